package ratelimitmw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// setupRouter wires the limiter in front of a trivial handler.
func setupRouter(rl *PerIPLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router
}

// doRequest sends a request with a fixed client address.
func doRequest(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPerIPLimiter_AllowsWithinBurst(t *testing.T) {
	// Refill is effectively zero during the test, only the burst matters.
	rl := NewPerIPLimiter(0.001, 3)
	router := setupRouter(rl)

	for i := 0; i < 3; i++ {
		w := doRequest(router, "10.0.0.1:1234")
		assert.Equal(t, http.StatusOK, w.Code, "request %d should be allowed", i+1)
	}
}

func TestPerIPLimiter_RejectsOverBurst(t *testing.T) {
	rl := NewPerIPLimiter(0.001, 2)
	router := setupRouter(rl)

	doRequest(router, "10.0.0.1:1234")
	doRequest(router, "10.0.0.1:1234")
	w := doRequest(router, "10.0.0.1:1234")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"too many requests"}`, w.Body.String())
}

func TestPerIPLimiter_BudgetsAreIndependentPerIP(t *testing.T) {
	rl := NewPerIPLimiter(0.001, 1)
	router := setupRouter(rl)

	// Exhaust the first client's budget.
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "10.0.0.1:1234").Code)

	// A different client still has its own budget.
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.2:1234").Code)
}

func TestPerIPLimiter_ReusesVisitorBucket(t *testing.T) {
	rl := NewPerIPLimiter(0.001, 5)

	first := rl.limiterFor("10.0.0.1")
	second := rl.limiterFor("10.0.0.1")

	assert.Same(t, first, second, "the same IP should reuse its bucket")
	assert.Len(t, rl.visitors, 1)
}
