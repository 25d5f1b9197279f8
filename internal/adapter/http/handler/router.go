package handler

import (
	"net/http"

	"payment-router/internal/adapter/http/middleware"
	"payment-router/internal/core/ports"
	"payment-router/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

const maxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	PaymentSvc     ports.PaymentService
	MerchantRepo   ports.MerchantRepository
	TokenSvc       ports.TokenService
	RateLimiter    ports.RateLimiter // nil = rate limiting disabled
	RateLimit      int64             // payment operations per merchant per minute, 0 disables
	HealthCheckers []ports.HealthChecker
	Metrics        http.Handler // nil = no /metrics endpoint
	Tracer         trace.Tracer // nil = no server spans
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	if deps.Tracer != nil {
		r.Use(telemetry.TracingMiddleware(deps.Tracer, deps.Logger))
	}
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	auth := middleware.JWTAuth(deps.TokenSvc, deps.MerchantRepo, deps.Logger)
	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.RateLimiter != nil && deps.RateLimit > 0 {
		limit = middleware.RateLimiter(deps.RateLimiter, "payments", middleware.PerMinute(deps.RateLimit), deps.Logger)
	}

	h := NewPaymentHandler(deps.PaymentSvc)
	payments := r.Group("/api/v1/payments", auth, limit)
	{
		payments.POST("", h.Create)
		payments.GET("/:payment_id", h.Retrieve)
		payments.POST("/:payment_id/confirm", h.Confirm)
		payments.POST("/:payment_id/cancel", h.Cancel)
		payments.POST("/:payment_id/capture", h.Capture)
	}

	return r
}
