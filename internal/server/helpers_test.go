package server

import (
	"bufio"
	"bytes"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"yatai/internal/config"
	"yatai/internal/route"
)

type mockAddr struct {
	str string
}

func (m mockAddr) Network() string { return "tcp" }
func (m mockAddr) String() string  { return m.str }

// mockConn は入力を文字列から読み、出力をバッファに溜める net.Conn
type mockConn struct {
	in     *strings.Reader
	out    bytes.Buffer
	closed bool
}

func newMockConn(raw string) *mockConn {
	return &mockConn{in: strings.NewReader(raw)}
}

func (m *mockConn) Read(b []byte) (int, error)         { return m.in.Read(b) }
func (m *mockConn) Write(b []byte) (int, error)        { return m.out.Write(b) }
func (m *mockConn) Close() error                       { m.closed = true; return nil }
func (m *mockConn) LocalAddr() net.Addr                { return mockAddr{"(server)"} }
func (m *mockConn) RemoteAddr() net.Addr               { return mockAddr{"(client)"} }
func (m *mockConn) SetDeadline(t time.Time) error      { return nil }
func (m *mockConn) SetReadDeadline(t time.Time) error  { return nil }
func (m *mockConn) SetWriteDeadline(t time.Time) error { return nil }

// testPNG はテスト用のPNGらしいバイト列
var testPNG = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x01, 0xfe, 0xff}

// newTestConfig はテスト用の設定を作成する
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0 // ランダムポートを使用
	cfg.Server.WebRoot = filepath.Join(t.TempDir(), "public")
	cfg.Server.ReadTimeout = 5 * time.Second
	cfg.Server.WriteTimeout = 5 * time.Second
	cfg.Admin.Port = 0

	files := map[string][]byte{
		"index.html":      []byte("<h1>Welcome</h1>"),
		"css/style.css":   []byte("body { margin: 0; }"),
		"docs/index.html": []byte("<h1>Docs</h1>"),
		"logo.png":        testPNG,
	}
	for name, data := range files {
		path := filepath.Join(cfg.Server.WebRoot, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll failed: %v", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	// Webルートの外に置く秘密ファイル
	secret := filepath.Join(filepath.Dir(cfg.Server.WebRoot), "secret.txt")
	if err := os.WriteFile(secret, []byte("secret"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	return cfg
}

// newTestServer はデフォルトルートを登録したテスト用サーバーを作成する
func newTestServer(t *testing.T) *Server {
	t.Helper()

	routes := route.New()
	route.RegisterDefaults(routes)

	srv, err := New(newTestConfig(t), routes)
	if err != nil {
		t.Fatalf("サーバーの作成に失敗しました: %v", err)
	}
	return srv
}

// roundTrip は生のリクエストを1接続で処理し、レスポンスを解析して返す
// 何も書き込まれなかった場合は nil を返す
func roundTrip(t *testing.T, srv *Server, raw string) (*http.Response, []byte) {
	t.Helper()

	conn := newMockConn(raw)
	srv.handleConnection(conn)

	if !conn.closed {
		t.Error("接続が閉じられていません")
	}
	if conn.out.Len() == 0 {
		return nil, nil
	}

	resp, err := http.ReadResponse(bufio.NewReader(&conn.out), nil)
	if err != nil {
		t.Fatalf("レスポンスの解析に失敗しました: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ボディの読み込みに失敗しました: %v", err)
	}
	return resp, body
}
