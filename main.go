package main

import (
	"context"
	"log"

	"yatai/internal/config"
	"yatai/internal/route"
	"yatai/internal/server"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// Webルートを準備
	if err := server.EnsureWebRoot(cfg.Server.WebRoot); err != nil {
		log.Fatalf("Webルートの準備に失敗しました: %v", err)
	}

	// ルートを登録
	routes := route.New()
	route.RegisterDefaults(routes)

	// サーバーを作成
	srv, err := server.New(cfg, routes)
	if err != nil {
		log.Fatalf("サーバーの作成に失敗しました: %v", err)
	}

	// サーバーを起動
	if err := srv.Start(context.Background()); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
