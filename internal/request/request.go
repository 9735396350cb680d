// Package request はTCP接続から読み取ったHTTPリクエストを解析する
//
// リクエストラインとヘッダーのみを対象とし、net/httpには依存しない。
// パーセントエンコーディングのデコードは行わない。
package request

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultVersion はリクエストラインにバージョンが無い場合に使うHTTPバージョン
const DefaultVersion = "HTTP/1.1"

// IndexFile はディレクトリに対して返すデフォルトドキュメント
const IndexFile = "index.html"

// MaxLineBytes はリクエストラインとヘッダー1行の上限（改行を含む）
const MaxLineBytes = 8 << 10

// MaxHeaders は受け付けるヘッダー行数の上限
const MaxHeaders = 100

var (
	// ErrMalformedRequestLine はリクエストラインのトークンが不足している場合のエラー
	ErrMalformedRequestLine = errors.New("不正なリクエストライン")
	// ErrLineTooLong は1行が MaxLineBytes を超えた場合のエラー
	ErrLineTooLong = errors.New("行が長すぎます")
	// ErrTooManyHeaders はヘッダー行が MaxHeaders を超えた場合のエラー
	ErrTooManyHeaders = errors.New("ヘッダーが多すぎます")
)

// Request は1回のリクエストの解析結果
// 解析後は変更しない
type Request struct {
	Method  string            // GET, POST など
	Target  string            // リクエストラインに書かれたままのパスとクエリ
	Path    string            // クエリを除いたパス（必ず "/" で始まる）
	Version string            // HTTPバージョン
	Query   map[string]string // クエリパラメータ（重複キーは後勝ち）
	Headers map[string]string // ヘッダー（キーは小文字）
	Body    []byte            // リクエストボディ
}

// ParseRequestLine はリクエストラインを解析する
// トークンが2つ未満の場合は ErrMalformedRequestLine を返す
func ParseRequestLine(line string) (*Request, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequestLine, line)
	}

	version := DefaultVersion
	if len(tokens) > 2 {
		version = tokens[2]
	}

	path, query := SplitTarget(tokens[1])

	return &Request{
		Method:  tokens[0],
		Target:  tokens[1],
		Path:    path,
		Version: version,
		Query:   query,
		Headers: map[string]string{},
	}, nil
}

// SplitTarget はリクエストターゲットをパスとクエリパラメータに分割する
//
// クエリは "&" で区切り、各要素を "=" で分割する。
// キーと値がどちらも空でない2要素になったものだけを採用し、
// それ以外は黙って捨てる。
func SplitTarget(target string) (string, map[string]string) {
	path, rawQuery, _ := strings.Cut(target, "?")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	query := make(map[string]string)
	if rawQuery == "" {
		return path, query
	}

	for _, segment := range strings.Split(rawQuery, "&") {
		kv := strings.Split(segment, "=")
		if len(kv) != 2 || kv[0] == "" || kv[1] == "" {
			continue
		}
		query[kv[0]] = kv[1]
	}

	return path, query
}

// LookupPath はルートやファイルの検索に使うパスを返す
// "/" は "/index.html" に置き換える
func (r *Request) LookupPath() string {
	if r.Path == "/" {
		return "/" + IndexFile
	}
	return r.Path
}

// FilePath はWebルートからの相対パスを返す
// 先頭の "/" を取り除き、空または "/" で終わる場合は index.html を付与する
func (r *Request) FilePath() string {
	rel := strings.TrimPrefix(r.Path, "/")
	if rel == "" || strings.HasSuffix(rel, "/") {
		rel += IndexFile
	}
	return rel
}

// Param はクエリパラメータを返す。存在しない場合は空文字
func (r *Request) Param(key string) string {
	return r.Query[key]
}

// Header はヘッダーの値を返す。キーの大文字小文字は区別しない
func (r *Request) Header(key string) string {
	return r.Headers[strings.ToLower(key)]
}

// ReadLine は1行を読み取り、末尾の改行を取り除いて返す
// データを1バイトも読まずに接続が閉じた場合は io.EOF を返す。
// MaxLineBytes を超えた時点で読むのをやめ、ErrLineTooLong を返す
func ReadLine(reader *bufio.Reader) (string, error) {
	var line []byte
	for {
		chunk, err := reader.ReadSlice('\n')
		if len(line)+len(chunk) > MaxLineBytes {
			return "", ErrLineTooLong
		}
		line = append(line, chunk...)

		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err == io.EOF && len(line) > 0 {
			break
		}
		return "", err
	}
	return strings.TrimRight(string(line), "\r\n"), nil
}

// ReadHeaders は空行までのヘッダーを読み取る
// ":" を含まない行は無視する。途中でEOFになった場合はそこまでをヘッダーとする
func ReadHeaders(reader *bufio.Reader) (map[string]string, error) {
	headers := make(map[string]string)
	for n := 0; ; n++ {
		if n >= MaxHeaders {
			return nil, ErrTooManyHeaders
		}
		line, err := ReadLine(reader)
		if err != nil {
			if err == io.EOF {
				return headers, nil
			}
			return nil, fmt.Errorf("ヘッダーの読み込みに失敗: %w", err)
		}
		if line == "" {
			return headers, nil
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		headers[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
}
