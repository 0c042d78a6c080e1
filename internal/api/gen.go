// Package api はapi/openapi.yamlから生成されるリクエスト/レスポンス型を提供します。
package api

//go:generate go tool oapi-codegen --config=oapi-codegen.yaml ../../api/openapi.yaml
