package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate tiers: credential endpoints get the strict bucket, everything else
// the general one.
const (
	limitStrict  = rate.Limit(2)
	burstStrict  = 5
	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key and evicts buckets that
// have been idle for a few minutes.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{visitors: make(map[string]*visitor)}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) get(key string, limit rate.Limit, burst int) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		limiter := rate.NewLimiter(limit, burst)
		rl.visitors[key] = &visitor{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)

		rl.mu.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}

// General limits by client IP at the default tier.
func (rl *RateLimiter) General() gin.HandlerFunc {
	return rl.handler("general", limitGeneral, burstGeneral)
}

// Strict limits login/register style endpoints.
func (rl *RateLimiter) Strict() gin.HandlerFunc {
	return rl.handler("strict", limitStrict, burstStrict)
}

func (rl *RateLimiter) handler(tier string, limit rate.Limit, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Separate buckets per tier so strict actions never consume the
		// general quota.
		key := c.ClientIP() + ":" + tier
		if !rl.get(key, limit, burst).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests",
			})
			return
		}
		c.Next()
	}
}
