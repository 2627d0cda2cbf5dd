package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than idleTTL are evicted on access.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	lastGC  time.Time
	now     func() time.Time

	log *zap.Logger
}

func NewRateLimiter(perMinute int, log *zap.Logger) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
		log:      log,
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastGC) > rl.idleTTL {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) > rl.idleTTL {
				delete(rl.visitors, k)
			}
		}
		rl.lastGC = now
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.allow(ip) {
			rl.log.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.FullPath()))
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Too many requests. Try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
