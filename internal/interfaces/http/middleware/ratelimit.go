package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/upkeep-inc/upkeep/internal/infrastructure/ratelimit"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/utils"
)

// RateLimiter limits requests per client IP with a ratelimit.Limiter
// (Redis when configured, in-process LRU otherwise).
type RateLimiter struct {
	limiter ratelimit.Limiter
	scope   string
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.Limiter, scope string, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		scope:   scope,
		logger:  logger,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.scope + ":" + c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Fail open when the backend is unavailable.
			rl.logger.Warnw("rate limiter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponseWithError(c, errors.NewRateLimitedError("rate limit exceeded, please try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}
