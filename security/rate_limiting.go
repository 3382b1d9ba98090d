package security

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redis     *redis.Client
	perMinute int
}

// NewRateLimiter counts in Redis when redisClient is set and in process memory
// otherwise.
func NewRateLimiter(redisClient *redis.Client, perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &RateLimiter{redis: redisClient, perMinute: perMinute}
}

// LoginRateLimit limits sign-in and registration attempts per client IP.
func (r *RateLimiter) LoginRateLimit() echo.MiddlewareFunc {
	var store middleware.RateLimiterStore
	if r.redis != nil {
		store = &redisStore{redis: r.redis, prefix: "ratelimit:auth:", limit: int64(r.perMinute), window: time.Minute}
	} else {
		store = middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      float64(r.perMinute) / 60,
			Burst:     r.perMinute,
			ExpiresIn: 3 * time.Minute,
		})
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, map[string]string{
				"error": "Unable to identify client",
			})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	})
}

// AntiBotMiddleware rejects crawler user agents and, with Redis, clients that
// exceed 30 requests a minute.
func (r *RateLimiter) AntiBotMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userAgent := c.Request().Header.Get("User-Agent")
			if isSuspiciousUserAgent(userAgent) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "Access denied",
				})
			}

			if r.redis != nil {
				ctx := c.Request().Context()
				key := fmt.Sprintf("antibot:%s", c.RealIP())

				count, err := r.redis.Incr(ctx, key).Result()
				if err == nil {
					if count == 1 {
						r.redis.Expire(ctx, key, time.Minute)
					}
					if count > 30 {
						return c.JSON(http.StatusTooManyRequests, map[string]string{
							"error": "Too many requests",
						})
					}
				}
			}

			return next(c)
		}
	}
}

func isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}

// redisStore is a fixed-window counter shared by every storefront instance.
type redisStore struct {
	redis  *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

func (s *redisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	key := s.prefix + identifier
	count, err := s.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit: incr %s: %w", key, err)
	}
	if count == 1 {
		if err := s.redis.Expire(ctx, key, s.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit: expire %s: %w", key, err)
		}
	}
	return count <= s.limit, nil
}
