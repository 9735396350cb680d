package request

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	// ErrMissingContentLength はContent-Lengthヘッダーが無い場合のエラー
	ErrMissingContentLength = errors.New("Content-Lengthがありません")
	// ErrInvalidContentLength はContent-Lengthが数値として不正な場合のエラー
	ErrInvalidContentLength = errors.New("不正なContent-Length")
	// ErrBodyTooLarge はボディが上限を超える場合のエラー
	ErrBodyTooLarge = errors.New("リクエストボディが大きすぎます")
)

// ContentLength はヘッダーからContent-Lengthを取り出す
func ContentLength(headers map[string]string) (int64, error) {
	value, ok := headers["content-length"]
	if !ok {
		return 0, ErrMissingContentLength
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidContentLength, value)
	}
	return n, nil
}

// ReadBody はContent-Lengthで指定されたバイト数だけボディを読み取る
// maxBytes が0より大きい場合はそれを上限とする
func ReadBody(reader *bufio.Reader, headers map[string]string, maxBytes int64) ([]byte, error) {
	length, err := ContentLength(headers)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && length > maxBytes {
		return nil, fmt.Errorf("%w: %d > %d", ErrBodyTooLarge, length, maxBytes)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(reader, body); err != nil {
		return nil, fmt.Errorf("ボディの読み込みに失敗: %w", err)
	}
	return body, nil
}
