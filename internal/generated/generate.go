// Package generated は api/openapi.yaml から生成した管理APIの型とGinルーティングを持つ
package generated

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 -config config.yaml ../../api/openapi.yaml
