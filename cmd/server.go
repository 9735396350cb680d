// Package main はyataiサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"yatai/internal/config"
	"yatai/internal/route"
	"yatai/internal/server"
)

func main() {
	// コマンドラインオプション
	var (
		host       = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port       = flag.Int("port", 0, "サーバーのポート (デフォルト: 35000)")
		root       = flag.String("root", "", "Webルートのディレクトリ (デフォルト: public)")
		workers    = flag.Int("workers", 0, "ワーカー数 (デフォルト: 10)")
		configFile = flag.String("config", "", "YAML設定ファイルのパス")
		help       = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("yatai")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// 設定を読み込む
	path := *configFile
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *root != "" {
		cfg.Server.WebRoot = *root
	}
	if *workers != 0 {
		cfg.Server.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定が不正です: %v", err)
	}

	if err := server.EnsureWebRoot(cfg.Server.WebRoot); err != nil {
		log.Fatalf("Webルートの準備に失敗しました: %v", err)
	}

	routes := route.New()
	route.RegisterDefaults(routes)

	srv, err := server.New(cfg, routes)
	if err != nil {
		log.Fatalf("サーバーの作成に失敗しました: %v", err)
	}

	// サーバーを起動
	log.Printf("yatai サーバーを起動します: %s", cfg.ServerAddress())
	if err := srv.Start(context.Background()); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
