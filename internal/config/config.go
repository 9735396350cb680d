package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig `yaml:"server"`
	Admin  AdminConfig  `yaml:"admin"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host    string `yaml:"host"`     // リッスンするホスト
	Port    int    `yaml:"port"`     // リッスンするポート番号
	WebRoot string `yaml:"web_root"` // 静的ファイルとPOSTデータの置き場所
	Workers int    `yaml:"workers"`  // 同時に処理する接続数の上限

	// リクエストボディの上限（バイト）
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// タイムアウト設定
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // 読み込みタイムアウト
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // 書き込みタイムアウト
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // シャットダウン待ち時間
}

// AdminConfig は管理用APIの設定
// Port が0の場合は起動しない
type AdminConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Default はデフォルト設定を返す
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            35000,
			WebRoot:         "public",
			Workers:         10,
			MaxBodyBytes:    10 << 20,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Admin: AdminConfig{
			Host: "127.0.0.1",
			Port: 35001,
		},
	}
}

// Load は設定を読み込む
// デフォルト値 → 設定ファイル（CONFIG_FILE）→ 環境変数 の順に上書きする
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile は指定したYAMLファイルを読み込む。path が空の場合はファイルを読まない
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("設定ファイルの解析に失敗: %w", err)
		}
	}

	cfg.applyEnv()

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// applyEnv は環境変数で設定を上書きする
func (c *Config) applyEnv() {
	c.Server.Host = getEnvOrDefault("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsIntOrDefault("PORT", c.Server.Port)
	c.Server.WebRoot = getEnvOrDefault("WEB_ROOT", c.Server.WebRoot)
	c.Server.Workers = getEnvAsIntOrDefault("WORKERS", c.Server.Workers)
	c.Admin.Port = getEnvAsIntOrDefault("ADMIN_PORT", c.Admin.Port)
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}
	if c.Server.WebRoot == "" {
		return fmt.Errorf("Webルートが設定されていません")
	}
	if c.Server.Workers < 1 {
		return fmt.Errorf("無効なワーカー数: %d", c.Server.Workers)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("無効なボディ上限: %d", c.Server.MaxBodyBytes)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("タイムアウトが負の値です")
	}

	// 管理API設定の検証
	if c.Admin.Port < 0 || c.Admin.Port > 65535 {
		return fmt.Errorf("無効な管理APIポート番号: %d", c.Admin.Port)
	}
	if c.Admin.Port != 0 && c.Admin.Port == c.Server.Port {
		return fmt.Errorf("管理APIのポートがサーバーと重複しています: %d", c.Admin.Port)
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// AdminAddress は管理APIのリッスンアドレスを返す
func (c *Config) AdminAddress() string {
	return fmt.Sprintf("%s:%d", c.Admin.Host, c.Admin.Port)
}

// AdminEnabled は管理APIを起動するかどうかを返す
func (c *Config) AdminEnabled() bool {
	return c.Admin.Port != 0
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}
