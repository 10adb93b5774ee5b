package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"voice-notes-api-server/internal/config"
	"voice-notes-api-server/internal/utils"
)

// RateLimit enforces a per-caller request budget over the configured window.
// Requests are keyed by API key, falling back to client IP for unauthenticated
// callers so they cannot dodge the limit by omitting the header.
func RateLimit(cfg *config.Config) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	refill := rate.Every(cfg.RateLimit.Window / time.Duration(cfg.RateLimit.Max))

	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			key = c.ClientIP()
		}

		mu.Lock()
		limiter, ok := limiters[key]
		if !ok {
			limiter = rate.NewLimiter(refill, cfg.RateLimit.Max)
			limiters[key] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			utils.TooManyRequests(c, "Too many requests, please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
