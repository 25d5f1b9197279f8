package middleware

import (
	"strconv"
	"time"

	"payment-router/internal/core/ports"
	"payment-router/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule is a fixed-window budget for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// PerMinute builds a one-minute rule.
func PerMinute(limit int64) RateLimitRule {
	return RateLimitRule{Limit: limit, Window: time.Minute}
}

// RateLimiter counts requests per merchant (per client IP before
// authentication) within group. Limiter failures let the request through.
func RateLimiter(limiter ports.RateLimiter, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := identifier(c) + ":" + group

		result, err := limiter.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := max(result.ResetAt-time.Now().Unix(), 1)
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			abort(c, apperror.ErrRateLimitExceeded())
			return
		}

		c.Next()
	}
}

func identifier(c *gin.Context) string {
	if mid := c.GetString(CtxMerchantID); mid != "" {
		return "m:" + mid
	}
	return "ip:" + c.ClientIP()
}
