package response

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteTo(t *testing.T) {
	res := New(200).SetBody("text/plain", []byte("FooBar"))

	var buf bytes.Buffer
	n, err := res.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	ss := []string{
		"HTTP/1.1 200 OK\r\n",
		"Connection: close\r\n",
		"Content-Length: 6\r\n",
		"Content-Type: text/plain\r\n",
		"\r\n",
		"FooBar",
	}
	expect := strings.Join(ss, "")
	if buf.String() != expect {
		t.Errorf("got %q, want %q", buf.String(), expect)
	}
	if n != int64(len(expect)) {
		t.Errorf("written bytes: got %d, want %d", n, len(expect))
	}
}

func TestWriteTo_EmptyBody(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New(200).WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Content-Length: 0\r\n") {
		t.Errorf("Content-Length: 0 が含まれていません: %q", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "\r\n\r\n") {
		t.Errorf("ヘッダーが空行で終わっていません: %q", buf.String())
	}
}

// TestErrorResponses はエラーレスポンスのステータスラインをテストする
func TestErrorResponses(t *testing.T) {
	testCases := []struct {
		name       string
		res        *Response
		statusLine string
	}{
		{"400", BadRequest(), "HTTP/1.1 400 Bad Request\r\n"},
		{"403", Forbidden(), "HTTP/1.1 403 Forbidden\r\n"},
		{"404", NotFound("missing.html"), "HTTP/1.1 404 Not Found\r\n"},
		{"405", MethodNotAllowed("GET, POST"), "HTTP/1.1 405 Method Not Allowed\r\n"},
		{"500", InternalError(), "HTTP/1.1 500 Internal Server Error\r\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if _, err := tc.res.WriteTo(&buf); err != nil {
				t.Fatalf("WriteTo failed: %v", err)
			}
			if !strings.HasPrefix(buf.String(), tc.statusLine) {
				t.Errorf("got %q, want prefix %q", buf.String(), tc.statusLine)
			}
			if tc.res.ContentType() != "text/html" {
				t.Errorf("Content-Type: got %q", tc.res.ContentType())
			}
		})
	}
}

func TestNotFoundNamesFile(t *testing.T) {
	res := NotFound("missing.html")
	if !bytes.Contains(res.Body, []byte("missing.html")) {
		t.Errorf("本文にファイル名が含まれていません: %s", res.Body)
	}

	res = NotFound("<b>x.html")
	if bytes.Contains(res.Body, []byte("<b>")) || !bytes.Contains(res.Body, []byte("&lt;b&gt;x.html")) {
		t.Errorf("ファイル名がエスケープされていません: %s", res.Body)
	}
}

func TestMethodNotAllowedAllowHeader(t *testing.T) {
	res := MethodNotAllowed("GET, POST")
	if res.Headers["Allow"] != "GET, POST" {
		t.Errorf("Allow: got %q", res.Headers["Allow"])
	}
}

func TestReason(t *testing.T) {
	if Reason(404) != "Not Found" {
		t.Errorf("Reason(404): got %q", Reason(404))
	}
	if Reason(999) != "Unknown" {
		t.Errorf("Reason(999): got %q", Reason(999))
	}
}
