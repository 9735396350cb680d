package route

import (
	"fmt"
	"sync"
	"testing"

	"yatai/internal/request"
	"yatai/internal/response"
)

func TestRegistry_LookupExactMatch(t *testing.T) {
	registry := New()
	registry.Get("/hello", func(req *request.Request, res *response.Response) string {
		return "hi"
	})

	testCases := []struct {
		name  string
		path  string
		found bool
	}{
		{"完全一致", "/hello", true},
		{"末尾スラッシュ", "/hello/", false},
		{"前方一致", "/hell", false},
		{"サブパス", "/hello/world", false},
		{"未登録", "/pi", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, found := registry.Lookup(tc.path)
			if found != tc.found {
				t.Errorf("Lookup(%q): got %v, want %v", tc.path, found, tc.found)
			}
		})
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	registry := New()
	registry.Get("/a", func(*request.Request, *response.Response) string { return "first" })
	registry.Get("/a", func(*request.Request, *response.Response) string { return "second" })

	handler, ok := registry.Lookup("/a")
	if !ok {
		t.Fatal("route not found")
	}
	if got := handler(&request.Request{}, response.New(200)); got != "second" {
		t.Errorf("got %q, want %q", got, "second")
	}
	if registry.Len() != 1 {
		t.Errorf("Expected 1 route, got %d", registry.Len())
	}
}

func TestRegistry_Paths(t *testing.T) {
	registry := New()
	RegisterDefaults(registry)

	paths := registry.Paths()
	if len(paths) != 2 || paths[0] != "/hello" || paths[1] != "/pi" {
		t.Errorf("Paths: got %v", paths)
	}
}

// TestRegistry_Concurrent は登録と参照を並行に行っても競合しないことを確認する
func TestRegistry_Concurrent(t *testing.T) {
	registry := New()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			registry.Get(fmt.Sprintf("/r%d", i), func(*request.Request, *response.Response) string { return "" })
		}(i)
		go func(i int) {
			defer wg.Done()
			registry.Lookup(fmt.Sprintf("/r%d", i))
		}(i)
	}
	wg.Wait()

	if registry.Len() != 10 {
		t.Errorf("Expected 10 routes, got %d", registry.Len())
	}
}

func TestDefaultRoutes(t *testing.T) {
	registry := New()
	RegisterDefaults(registry)

	hello, ok := registry.Lookup("/hello")
	if !ok {
		t.Fatal("/hello が登録されていません")
	}
	req := &request.Request{Query: map[string]string{"name": "Pedro"}}
	if got := hello(req, response.New(200)); got != "Hello Pedro" {
		t.Errorf("/hello: got %q", got)
	}

	pi, ok := registry.Lookup("/pi")
	if !ok {
		t.Fatal("/pi が登録されていません")
	}
	res := response.New(200)
	if got := pi(&request.Request{}, res); got != "3.141592653589793" {
		t.Errorf("/pi: got %q", got)
	}
	if res.ContentType() != "text/plain" {
		t.Errorf("/pi Content-Type: got %q", res.ContentType())
	}
}
