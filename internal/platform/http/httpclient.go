package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は外部の分類API呼び出し用に調整したHTTPクライアントを返します。
//
// http.DefaultClient はタイムアウトを持たないため使用しません。接続と
// TLSハンドシェイクのタイムアウトは短めに設定し、アイドル接続は呼び先が
// 少数ホストである前提で使い回します。リクエスト全体の上限は呼び出し元が
// timeout で指定します。
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}
