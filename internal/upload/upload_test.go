package upload

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNewStore_EmptyRoot(t *testing.T) {
	if _, err := NewStore(""); !errors.Is(err, ErrEmptyRoot) {
		t.Errorf("ErrEmptyRoot が期待されましたが %v でした", err)
	}
}

func TestStore_Save(t *testing.T) {
	root := t.TempDir()
	store, err := NewStore(root)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	name, err := store.Save([]byte("hello"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !strings.HasPrefix(name, FilePrefix) || !strings.HasSuffix(name, FileSuffix) {
		t.Errorf("不正なファイル名: %s", name)
	}

	data, err := os.ReadFile(filepath.Join(root, name))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content: got %q, want %q", data, "hello")
	}

	entries, _ := os.ReadDir(root)
	if len(entries) != 1 {
		t.Errorf("Expected 1 file, got %d", len(entries))
	}
}

// TestStore_SameMillisecond は同じミリ秒の保存でもファイル名が衝突しないことをテストする
func TestStore_SameMillisecond(t *testing.T) {
	root := t.TempDir()
	store, _ := NewStore(root)
	fixed := time.UnixMilli(1700000000000)
	store.now = func() time.Time { return fixed }

	const n = 20
	var wg sync.WaitGroup
	names := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name, err := store.Save([]byte("x"))
			if err != nil {
				t.Errorf("Save failed: %v", err)
				return
			}
			names <- name
		}()
	}
	wg.Wait()
	close(names)

	seen := make(map[string]bool)
	for name := range names {
		if seen[name] {
			t.Errorf("ファイル名が重複しました: %s", name)
		}
		seen[name] = true
		if !strings.HasPrefix(name, "post_data_1700000000000_") {
			t.Errorf("タイムスタンプが含まれていません: %s", name)
		}
	}
	if len(seen) != n {
		t.Errorf("Expected %d files, got %d", n, len(seen))
	}
}

func TestStore_List(t *testing.T) {
	root := t.TempDir()
	store, _ := NewStore(root)

	// 対象外のファイル
	os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>hi</h1>"), 0o644)
	os.Mkdir(filepath.Join(root, "post_data_dir.txt"), 0o755)

	first, _ := store.Save([]byte("first"))
	second, _ := store.Save([]byte("second!"))

	// 更新時刻を明示的にずらす
	old := time.Now().Add(-time.Hour)
	os.Chtimes(filepath.Join(root, first), old, old)

	files, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %d: %v", len(files), files)
	}
	if files[0].Name != second || files[1].Name != first {
		t.Errorf("order: got %s, %s", files[0].Name, files[1].Name)
	}
	if files[0].Size != int64(len("second!")) {
		t.Errorf("size: got %d", files[0].Size)
	}
}

func TestStore_SaveMissingRoot(t *testing.T) {
	store, _ := NewStore(filepath.Join(t.TempDir(), "missing"))
	if _, err := store.Save([]byte("x")); err == nil {
		t.Error("存在しないディレクトリへの保存はエラーになるべきです")
	}
}
