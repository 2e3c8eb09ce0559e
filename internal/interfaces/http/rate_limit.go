package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/MedStock-api/internal/application/dto"
)

// limiterIdleTTL tiempo sin uso tras el cual se descarta el limitador de una IP.
const limiterIdleTTL = 10 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter limita peticiones por IP con un token bucket (golang.org/x/time/rate).
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	every    rate.Limit
	burst    int
	now      func() time.Time
}

// NewIPRateLimiter permite perMinute peticiones por minuto por IP, con ráfagas de burst.
func NewIPRateLimiter(perMinute, burst int) *IPRateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		limiters: make(map[string]*ipLimiter),
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow consume un token del bucket de la IP.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, v := range l.limiters {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(l.limiters, k)
		}
	}
	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.every, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// Middleware responde 429 RATE_LIMITED cuando la IP agotó su cupo.
func (l *IPRateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(c.IP()) {
			c.Set(fiber.HeaderRetryAfter, "60")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiados intentos, espere un momento"})
		}
		return c.Next()
	}
}
