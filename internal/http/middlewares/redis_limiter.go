package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is the shared fixed-window limiter: one INCR per request
// with the window TTL set when the key is first created. All instances
// pointing at the same redis share the window.
type RedisRateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
	}
}

func (rl *RedisRateLimiter) RateLimiterMiddleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		if key == "" {
			key = clientIP(c)
		}

		ctx := c.Request.Context()
		redisKey := rl.prefix + key

		pipe := rl.rdb.TxPipeline()
		incr := pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, rl.window)
		ttl := pipe.TTL(ctx, redisKey)

		if _, err := pipe.Exec(ctx); err != nil {
			// fail open: a limiter outage should not take logins down with it
			c.Next()
			return
		}

		if int(incr.Val()) > rl.limit {
			retryAfter := int(ttl.Val().Seconds())

			if retryAfter < 0 {
				retryAfter = 0
			}

			c.Header("Retry-After", itoa(retryAfter))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"msg": "Too many requests from this IP, please try again after 15 minutes",
			})
			return
		}

		c.Next()
	}
}
