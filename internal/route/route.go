// Package route はパスとハンドラの完全一致ルーティングを提供する
package route

import (
	"sort"
	"sync"

	"yatai/internal/request"
	"yatai/internal/response"
)

// Handler はリクエストを受け取り、レスポンス本文を返す
// res を通じてステータスやヘッダーを変更できる
type Handler func(req *request.Request, res *response.Response) string

// Registry はパス文字列からハンドラへの対応表
// 登録と参照は並行に呼び出してよい
type Registry struct {
	mu     sync.RWMutex
	routes map[string]Handler
}

// New は空のRegistryを作成する
func New() *Registry {
	return &Registry{
		routes: make(map[string]Handler),
	}
}

// Get はGETリクエスト用のハンドラを登録する
// 同じパスを再登録した場合は上書きする
func (r *Registry) Get(path string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[path] = handler
}

// Lookup はパスに完全一致するハンドラを返す
func (r *Registry) Lookup(path string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.routes[path]
	return handler, ok
}

// Paths は登録済みのパスをソートして返す
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := make([]string, 0, len(r.routes))
	for path := range r.routes {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Len は登録済みルートの数を返す
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}
