// Package ratelimitmw provides per-IP request rate limiting for the
// credential endpoints (signup/login), where unthrottled clients could
// brute-force passwords or mass-register accounts.
package ratelimitmw

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"mindscan_backend/internal/api"
)

// visitorTTL is how long an idle client keeps its token bucket.
const visitorTTL = 10 * time.Minute

// visitor tracks the limiter and last activity for one client IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// PerIPLimiter hands out one token bucket per client IP and forgets
// buckets that have been idle for visitorTTL.
type PerIPLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	ttl      time.Duration
}

// NewPerIPLimiter creates a limiter allowing rps requests per second with
// the given burst per IP, and starts the background visitor cleanup.
func NewPerIPLimiter(rps float64, burst int) *PerIPLimiter {
	rl := &PerIPLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		ttl:      visitorTTL,
	}
	go rl.cleanup()
	return rl
}

func (rl *PerIPLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		limiter := rate.NewLimiter(rl.rps, rl.burst)
		rl.visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *PerIPLimiter) cleanup() {
	for {
		time.Sleep(rl.ttl)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > rl.ttl {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware returns a gin handler that rejects requests over the per-IP
// budget with 429.
func (rl *PerIPLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.limiterFor(ip).Allow() {
			slog.Warn("rate limit exceeded", "remote_addr", ip, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "too many requests"})
			return
		}
		c.Next()
	}
}

// RateLimit is a convenience wrapper that builds a PerIPLimiter and returns
// its middleware in one call.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	return NewPerIPLimiter(rps, burst).Middleware()
}
