// Package static はWebルート配下のファイルを配信する
//
// ファイルはリクエストごとにディスクから読み直し、キャッシュしない。
// 画像ファイルはbase64で埋め込んだHTMLとして返す。
package static

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"yatai/internal/contenttype"
	"yatai/internal/response"
)

// FileServer はWebルートからファイルを配信する
type FileServer struct {
	root string
}

// New は新しいFileServerを作成する
func New(root string) *FileServer {
	return &FileServer{root: filepath.Clean(root)}
}

// Root はWebルートのパスを返す
func (s *FileServer) Root() string {
	return s.root
}

// Resolve はWebルートからの相対パスを絶対パスに変換する
// Webルートの外を指す場合は false を返す
func (s *FileServer) Resolve(rel string) (string, bool) {
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	within, err := filepath.Rel(s.root, full)
	if err != nil {
		return "", false
	}
	if within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", false
	}
	return full, true
}

// Serve は相対パスのファイルを読み込みレスポンスを作成する
//
// 判定の優先順:
//   - Webルート外 → 403
//   - 存在しない → 404
//   - ディレクトリ → 403
//   - 読み取り権限なし → 403
//   - 読み込み失敗 → 500
//   - 成功 → 200
func (s *FileServer) Serve(rel string) *response.Response {
	full, ok := s.Resolve(rel)
	if !ok {
		log.Printf("Webルート外へのアクセスを拒否しました: %s", rel)
		return response.Forbidden()
	}

	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return response.NotFound(rel)
		}
		if errors.Is(err, fs.ErrPermission) {
			return response.Forbidden()
		}
		log.Printf("ファイル情報の取得に失敗: %s: %v", full, err)
		return response.InternalError()
	}
	if info.IsDir() {
		return response.Forbidden()
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return response.Forbidden()
		}
		log.Printf("ファイルの読み込みに失敗: %s: %v", full, err)
		return response.InternalError()
	}

	contentType := contenttype.Resolve(rel)
	if contenttype.IsImage(contentType) {
		return response.New(200).SetBody("text/html", []byte(ImagePage(contentType, data)))
	}
	return response.New(200).SetBody(contentType, data)
}

// ImagePage は画像をdata URIとして埋め込んだHTMLを返す
func ImagePage(contentType string, data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf(`<html><body><img src="data:%s;base64,%s"></body></html>`, contentType, encoded)
}
