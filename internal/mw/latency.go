package mw

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Latency holds every request for d before handling it, imitating the mock backend's
// fixed network delay. A client that goes away during the wait cancels the request
// without it touching any store.
func Latency(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}

		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
			c.Next()
		case <-c.Request.Context().Done():
			c.Abort()
		}
	}
}
