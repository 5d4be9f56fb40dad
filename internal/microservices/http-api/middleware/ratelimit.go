package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"mediaminder/internal/microservices/http-api/dto"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Limiter decides whether one more request for key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests with 429 once the client's budget is spent.
// Limiter errors let the request through.
func RateLimit(limiter Limiter, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.WithError(err).WithField("key", key).Warn("rate limiter unavailable")
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// IPLimiter keeps one token bucket per key in process memory. A bucket left
// idle long enough to refill completely is indistinguishable from a new one,
// so such buckets are swept out of the map.
type IPLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*ipBucket
	rps       rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPLimiter(rps float64, burst int) *IPLimiter {
	idleTTL := time.Hour
	if rps > 0 {
		idleTTL = time.Duration(math.Ceil(float64(burst) / rps * float64(time.Second)))
	}
	if idleTTL < time.Minute {
		idleTTL = time.Minute
	}
	return &IPLimiter{
		limiters:  make(map[string]*ipBucket),
		rps:       rate.Limit(rps),
		burst:     burst,
		idleTTL:   idleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *IPLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.evictIdle(now)
	}

	b, ok := l.limiters[key]
	if !ok {
		b = &ipBucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1), nil
}

// evictIdle drops every bucket not seen for idleTTL. Callers hold mu.
func (l *IPLimiter) evictIdle(now time.Time) {
	for key, b := range l.limiters {
		if now.Sub(b.lastSeen) >= l.idleTTL {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

// fixedWindowScript counts hits in the current window and starts the window
// on the first hit.
var fixedWindowScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// RedisLimiter is a fixed-window limiter shared by every API instance.
// A window admits burst requests and lasts as long as the bucket takes to
// refill at rps.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, rps float64, burst int) *RedisLimiter {
	window := time.Second
	if rps > 0 && burst > 0 {
		window = time.Duration(math.Ceil(float64(burst) / rps * float64(time.Second)))
	}
	return &RedisLimiter{
		client: client,
		prefix: "mediaminder:ratelimit:",
		limit:  int64(burst),
		window: window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := fixedWindowScript.Run(ctx, l.client, []string{l.prefix + key}, strconv.FormatInt(l.window.Milliseconds(), 10)).Int64()
	if err != nil {
		return false, err
	}
	return n <= l.limit, nil
}
