package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/najilx/file-share-webapp/backend/common"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP. Stale entries are
// swept so the map does not grow with every address ever seen.
type ipRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
}

func newIPRateLimiter(maxRequests int, perSeconds int64) *ipRateLimiter {
	rl := &ipRateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(float64(maxRequests) / float64(perSeconds)),
		burst:   maxRequests,
	}
	go rl.sweep(time.Duration(perSeconds) * time.Second)
	return rl
}

func (rl *ipRateLimiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		rl.sweepOnce(2 * interval)
	}
}

func (rl *ipRateLimiter) sweepOnce(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, client := range rl.clients {
		if time.Since(client.lastSeen) > maxIdle {
			delete(rl.clients, ip)
		}
	}
}

func (rl *ipRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	client, ok := rl.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = client
	}
	client.lastSeen = time.Now()
	return client.limiter.Allow()
}

func rateLimitMiddleware(rl *ipRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			common.RespErrorStr(c, http.StatusTooManyRequests, "too many requests, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GlobalAPIRateLimit is the coarse limit applied to the whole API group.
func GlobalAPIRateLimit() gin.HandlerFunc {
	return rateLimitMiddleware(newIPRateLimiter(common.GlobalAPIRateLimitNum, common.GlobalAPIRateLimitDuration))
}

// CriticalRateLimit is the tight limit for account-critical endpoints:
// register, login, and the password-reset pair.
func CriticalRateLimit() gin.HandlerFunc {
	return rateLimitMiddleware(newIPRateLimiter(common.CriticalRateLimitNum, common.CriticalRateLimitDuration))
}
