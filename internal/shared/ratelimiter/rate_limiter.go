// Package ratelimiter は外部API呼び出しの頻度を抑えるための簡易リミッターを提供します。
package ratelimiter

import (
	"log/slog"
	"time"
)

// RateLimiterInterface は呼び出し側が待機制御だけに依存するためのインターフェースです。
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter は固定ウィンドウ方式のリミッターです。ウィンドウ内の呼び出しが
// 上限を超えたら、次のウィンドウが始まるまでブロックします。
type RateLimiter struct {
	limit       int           // ウィンドウあたりの許容呼び出し数
	interval    time.Duration // ウィンドウの長さ
	calls       int
	windowStart time.Time
}

// NewRateLimiter は interval ごとに limit 回まで許可するリミッターを返します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:       limit,
		interval:    interval,
		windowStart: time.Now(),
	}
}

// WaitIfNeeded は上限に達していれば現在のウィンドウが終わるまでスリープします。
func (rl *RateLimiter) WaitIfNeeded() {
	now := time.Now()
	if now.Sub(rl.windowStart) >= rl.interval {
		rl.calls = 0
		rl.windowStart = now
	}

	rl.calls++
	if rl.calls > rl.limit {
		sleep := rl.interval - now.Sub(rl.windowStart)
		if sleep > 0 {
			slog.Info("rate limit reached, waiting", "limit", rl.limit, "sleep", sleep)
			time.Sleep(sleep)
		}
		rl.calls = 1
		rl.windowStart = time.Now()
	}
}
