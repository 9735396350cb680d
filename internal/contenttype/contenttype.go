// Package contenttype はファイル名の拡張子からContent-Typeを決定する
package contenttype

import "strings"

// Default は未知の拡張子に対して返すContent-Type
const Default = "text/plain"

// 拡張子とContent-Typeの対応表
// 大文字小文字は区別する（".HTML" は一致しない）
var types = []struct {
	ext         string
	contentType string
}{
	{".html", "text/html"},
	{".css", "text/css"},
	{".js", "application/javascript"},
	{".png", "image/png"},
	{".jpg", "image/jpeg"},
	{".jpeg", "image/jpeg"},
}

// Resolve はファイル名に対応するContent-Typeを返す
func Resolve(name string) string {
	for _, t := range types {
		if strings.HasSuffix(name, t.ext) {
			return t.contentType
		}
	}
	return Default
}

// IsImage はContent-Typeが画像かどうかを判定する
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
