package server

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// EnsureWebRoot はWebルートが無ければ作成し、読み取れることを確認する
func EnsureWebRoot(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("Webルートの作成に失敗: %w", err)
	}

	f, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("Webルートを読み取れません: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("Webルートの情報を取得できません: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("Webルートがディレクトリではありません: %s", dir)
	}
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("Webルートを読み取れません: %w", err)
	}
	return nil
}
