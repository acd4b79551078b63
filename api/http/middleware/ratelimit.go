package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Limiter keeps one token bucket per key (user id, or client IP for anonymous calls).
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	rate     rate.Limit
	burst    int
	done     chan struct{}
	once     sync.Once
}

// NewLimiter allows requestsPerMin per key with the given burst. Idle keys are
// evicted every ten minutes until Close is called.
func NewLimiter(requestsPerMin, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	l := &Limiter{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
		done:     make(chan struct{}),
	}
	go l.cleanupRoutine(10 * time.Minute)
	return l
}

func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = lim
	}
	l.lastSeen[key] = time.Now()
	l.mu.Unlock()
	return lim.Allow()
}

func (l *Limiter) cleanupRoutine(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evict(every)
		case <-l.done:
			return
		}
	}
}

func (l *Limiter) evict(age time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	for key, seen := range l.lastSeen {
		if now.Sub(seen) > age {
			delete(l.limiters, key)
			delete(l.lastSeen, key)
		}
	}
}

// Close stops the eviction goroutine.
func (l *Limiter) Close() {
	l.once.Do(func() { close(l.done) })
}

// RateLimit rejects over-limit requests with 429. It keys on c.Locals("userId"),
// so it must run after the auth middleware.
func RateLimit(l *Limiter, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		key, _ := c.Locals("userId").(string)
		if key == "" {
			key = "ip:" + c.IP()
		}
		if !l.Allow(key) {
			log.Info("rate limit exceeded", zap.String("key", key), zap.String("path", c.Path()))
			c.Set(fiber.HeaderRetryAfter, "60")
			return c.Status(http.StatusTooManyRequests).JSON(fiber.Map{"message": "too many requests"})
		}
		return c.Next()
	}
}
