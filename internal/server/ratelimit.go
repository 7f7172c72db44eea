package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"fitnessmanager/internal/api"
	"fitnessmanager/internal/logger"
	"fitnessmanager/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	backendMemory = "memory"
	backendRedis  = "redis"
)

// Limiter decides whether one more request from key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// MemoryRateLimiter keeps one token bucket per client ip in process.
// Buckets idle for longer than ttl are swept once a minute.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
	ttl     time.Duration
	now     func() time.Time
}

type bucket struct {
	*rate.Limiter
	lastSeen time.Time
}

func NewMemoryRateLimiter(rps float64, burst int, ttl time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Run sweeps idle buckets until ctx is done.
func (l *MemoryRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *MemoryRateLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.ttl)
	for ip, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, ip)
		}
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, ip string) bool {
	l.mu.Lock()
	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{Limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = l.now()
	l.mu.Unlock()

	return b.Allow()
}

// RedisRateLimiter shares a fixed-window counter per key across instances.
// Redis failures let the request through.
type RedisRateLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRedisRateLimiter(client redis.Cmdable, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

func (l *RedisRateLimiter) key(ip string) string {
	return fmt.Sprintf("ratelimit:%s:%d", ip, l.now().UnixNano()/int64(l.window))
}

func (l *RedisRateLimiter) Allow(ctx context.Context, ip string) bool {
	key := l.key(ip)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		logger.Warn("rate limiter unavailable", "error", err)
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			logger.Warn("rate limiter expire failed", "key", key, "error", err)
		}
	}
	return count <= l.limit
}

// RateLimitMiddleware rejects requests over the limit with 429.
func RateLimitMiddleware(limiter Limiter, backend string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.Request.Context(), c.ClientIP()) {
			metrics.RecordRateLimited(backend)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{
				Error: "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// newLimiter picks the Redis limiter when a client is configured.
func newLimiter(rdb redis.Cmdable, rps float64, burst int) (Limiter, string) {
	if rdb != nil {
		return NewRedisRateLimiter(rdb, burst, time.Second), backendRedis
	}
	return NewMemoryRateLimiter(rps, burst, 3*time.Minute), backendMemory
}
