// Package upload はPOSTで受け取ったデータをWebルートに保存する
package upload

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

const (
	// FilePrefix は保存ファイル名の接頭辞
	FilePrefix = "post_data_"
	// FileSuffix は保存ファイル名の拡張子
	FileSuffix = ".txt"
)

// ErrEmptyRoot は保存先ディレクトリが指定されていない場合のエラー
var ErrEmptyRoot = errors.New("保存先ディレクトリが指定されていません")

// File は保存済みファイルの情報
type File struct {
	Name    string    // ファイル名
	Size    int64     // バイト数
	ModTime time.Time // 更新時刻
}

// Store はPOSTデータの保存先
type Store struct {
	root string
	now  func() time.Time
}

// NewStore は新しいStoreを作成する
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, ErrEmptyRoot
	}
	return &Store{
		root: root,
		now:  time.Now,
	}, nil
}

// NewName は衝突しないファイル名を生成する
// 形式: post_data_<unixミリ秒>_<uuid>.txt
func (s *Store) NewName() string {
	return fmt.Sprintf("%s%d_%s%s", FilePrefix, s.now().UnixMilli(), uuid.New().String(), FileSuffix)
}

// Save はデータを新しいファイルに書き込み、そのファイル名を返す
// 既存ファイルは上書きしない
func (s *Store) Save(data []byte) (string, error) {
	name := s.NewName()
	path := filepath.Join(s.root, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("ファイルの作成に失敗: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("ファイルの書き込みに失敗: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("ファイルのクローズに失敗: %w", err)
	}

	log.Printf("POSTデータを保存しました: %s (%s)", name, humanize.Bytes(uint64(len(data))))
	return name, nil
}

// List は保存済みファイルを新しい順に返す
func (s *Store) List() ([]File, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("ディレクトリの読み込みに失敗: %w", err)
	}

	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, FilePrefix) || !strings.HasSuffix(name, FileSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// 列挙中に削除された
			continue
		}
		files = append(files, File{
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name > files[j].Name
		}
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}
