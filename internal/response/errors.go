package response

import (
	"fmt"
	"html"
)

// 各エラーレスポンスは最小限のHTMLを返す

// BadRequest は400レスポンスを返す
func BadRequest() *Response {
	return htmlPage(400, "<h1>400 - Bad Request</h1>")
}

// Forbidden は403レスポンスを返す
func Forbidden() *Response {
	return htmlPage(403, "<h1>403 - Forbidden</h1>")
}

// NotFound は404レスポンスを返す。本文に見つからなかったファイル名を含める
func NotFound(name string) *Response {
	return htmlPage(404, fmt.Sprintf("<h1>404 - Not Found</h1><p>%s does not exist</p>", html.EscapeString(name)))
}

// MethodNotAllowed は405レスポンスを返す
func MethodNotAllowed(allow string) *Response {
	return htmlPage(405, "<h1>405 - Method Not Allowed</h1>").SetHeader("Allow", allow)
}

// InternalError は500レスポンスを返す
func InternalError() *Response {
	return htmlPage(500, "<h1>500 - Internal Server Error</h1>")
}

// Text はプレーンテキストの200レスポンスを返す
func Text(body string) *Response {
	return New(200).SetBody("text/plain", []byte(body))
}

func htmlPage(status int, body string) *Response {
	return New(status).SetBody("text/html", []byte("<html><body>"+body+"</body></html>"))
}
