package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"
	"payment-router/pkg/apperror"
	"payment-router/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxRequestID   = "request_id"
	CtxMerchantID  = "merchant_id"
	CtxMerchantKey = "merchant"
)

// RequestID propagates a caller-supplied X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// JWTAuth validates the bearer token and loads the merchant it names.
// Unknown merchants are reported as an invalid token.
func JWTAuth(tokenSvc ports.TokenService, merchants ports.MerchantRepository, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || tokenStr == "" {
			abort(c, apperror.ErrInvalidToken())
			return
		}

		claims, err := tokenSvc.Validate(tokenStr)
		if err != nil {
			abort(c, apperror.ErrInvalidToken())
			return
		}

		merchant, err := merchants.GetByID(c.Request.Context(), claims.MerchantID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			abort(c, apperror.ErrInvalidToken())
			return
		case err != nil:
			log.Error().Err(err).Str("merchant_id", claims.MerchantID).Msg("failed to fetch merchant")
			abort(c, apperror.ErrDatabaseError(err))
			return
		}
		if !merchant.IsActive() {
			abort(c, apperror.ErrMerchantSuspended())
			return
		}

		c.Set(CtxMerchantID, merchant.MerchantID)
		c.Set(CtxMerchantKey, merchant)
		c.Next()
	}
}

// Merchant returns the account JWTAuth stored on the context.
func Merchant(c *gin.Context) (*domain.MerchantAccount, bool) {
	v, ok := c.Get(CtxMerchantKey)
	if !ok {
		return nil, false
	}
	m, ok := v.(*domain.MerchantAccount)
	return m, ok && m != nil
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("request_id", c.GetString(CtxRequestID)).
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP())
		if mid := c.GetString(CtxMerchantID); mid != "" {
			event.Str("merchant_id", mid)
		}
		event.Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("panic", r).
					Str("request_id", c.GetString(CtxRequestID)).
					Str("path", c.Request.URL.Path).
					Msg("panic recovered")
				abort(c, apperror.InternalError(nil))
			}
		}()
		c.Next()
	}
}

// MaxBodySize caps the request body; reads past the limit fail and
// binding reports them as a malformed body.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}
