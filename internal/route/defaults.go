package route

import (
	"math"
	"strconv"

	"yatai/internal/request"
	"yatai/internal/response"
)

// RegisterDefaults は起動時に組み込みのルートを登録する
func RegisterDefaults(r *Registry) {
	r.Get("/hello", func(req *request.Request, res *response.Response) string {
		return "Hello " + req.Param("name")
	})
	r.Get("/pi", func(req *request.Request, res *response.Response) string {
		res.SetHeader("Content-Type", "text/plain")
		return strconv.FormatFloat(math.Pi, 'f', -1, 64)
	})
}
