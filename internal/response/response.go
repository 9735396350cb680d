// Package response はHTTPレスポンスの組み立てと書き出しを行う
package response

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// CRLF はHTTPの行区切り
const CRLF = "\r\n"

// Version はステータスラインに書き出すHTTPバージョン
const Version = "HTTP/1.1"

// ステータスコードと理由句の対応
var reasons = map[int]string{
	200: "OK",
	400: "Bad Request",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	500: "Internal Server Error",
}

// Reason はステータスコードに対応する理由句を返す
func Reason(status int) string {
	if reason, ok := reasons[status]; ok {
		return reason
	}
	return "Unknown"
}

// Response は1回分のHTTPレスポンス
// ルートハンドラにはレスポンスビルダーとして渡される
type Response struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// New は指定したステータスの空のレスポンスを作成する
func New(status int) *Response {
	return &Response{
		Status:  status,
		Headers: make(map[string]string),
	}
}

// SetStatus はステータスコードを設定する
func (r *Response) SetStatus(status int) *Response {
	r.Status = status
	return r
}

// SetHeader はヘッダーを設定する
func (r *Response) SetHeader(key, value string) *Response {
	r.Headers[key] = value
	return r
}

// SetBody はボディとContent-Typeを設定する
func (r *Response) SetBody(contentType string, body []byte) *Response {
	r.Headers["Content-Type"] = contentType
	r.Body = body
	return r
}

// ContentType は設定済みのContent-Typeを返す
func (r *Response) ContentType() string {
	return r.Headers["Content-Type"]
}

// WriteTo はステータスライン・ヘッダー・ボディを書き出してフラッシュする
// Content-Length と Connection: close は常に付与する
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)

	headers := make(map[string]string, len(r.Headers)+2)
	for k, v := range r.Headers {
		headers[k] = v
	}
	headers["Content-Length"] = strconv.Itoa(len(r.Body))
	headers["Connection"] = "close"

	// ヘッダーの順序を固定する
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var written int64
	n, err := fmt.Fprintf(bw, "%s %d %s%s", Version, r.Status, Reason(r.Status), CRLF)
	written += int64(n)
	if err != nil {
		return written, err
	}
	for _, k := range keys {
		n, err = fmt.Fprintf(bw, "%s: %s%s", k, headers[k], CRLF)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	n, err = io.WriteString(bw, CRLF)
	written += int64(n)
	if err != nil {
		return written, err
	}
	n, err = bw.Write(r.Body)
	written += int64(n)
	if err != nil {
		return written, err
	}

	return written, bw.Flush()
}
