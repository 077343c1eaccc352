package mw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCache_ServesRepeatedGets(t *testing.T) {
	calls := 0
	r := gin.New()
	r.Use(Cache(cache.New(time.Minute, time.Minute), time.Minute))
	r.GET("/fixers", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"calls": calls})
	})
	r.GET("/missing", func(c *gin.Context) {
		calls++
		c.Status(http.StatusNotFound)
	})

	testCases := []struct {
		name     string
		path     string
		xcache   string
		expected int
	}{
		{name: "first request misses", path: "/fixers?q=pipe", xcache: "MISS", expected: 1},
		{name: "same uri hits", path: "/fixers?q=pipe", xcache: "HIT", expected: 1},
		{name: "different query misses", path: "/fixers?q=wire", xcache: "MISS", expected: 2},
		{name: "errors are not cached", path: "/missing", xcache: "MISS", expected: 3},
		{name: "errors are not cached again", path: "/missing", xcache: "MISS", expected: 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.xcache, w.Header().Get("X-Cache"))
			assert.Equal(t, tc.expected, calls)
		})
	}
}

func TestRateLimiter_RejectsBurst(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(rate.Limit(1), 2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestLatency(t *testing.T) {
	handled := false
	r := gin.New()
	r.Use(Latency(20 * time.Millisecond))
	r.GET("/", func(c *gin.Context) {
		handled = true
		c.Status(http.StatusOK)
	})

	start := time.Now()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, handled)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	handled = false
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, handled, "a cancelled request must not reach the handler")
}
