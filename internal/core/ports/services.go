package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"payment-router/internal/core/domain"
)

// EncryptionService handles AES-256-GCM encryption/decryption.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(merchantID string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	MerchantID string
}

// PaymentLocker provides single-flight execution per payment across a deployment.
type PaymentLocker interface {
	// Acquire returns a release token, or ok=false when another holder owns the key.
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	// Release deletes the key only if it is still held with token.
	Release(ctx context.Context, key, token string) error
}

// RateLimiter counts operations in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// EventPublisher delivers payment status events to downstream consumers.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event domain.PaymentStatusEvent) error
}

// --- Service Ports (Business Logic) ---

// PaymentService is the entry point of the request-handling layer.
type PaymentService interface {
	Create(ctx context.Context, merchant *domain.MerchantAccount, req PaymentsRequest) (*PaymentsResponse, error)
	Confirm(ctx context.Context, merchant *domain.MerchantAccount, req PaymentsRequest) (*PaymentsResponse, error)
	Cancel(ctx context.Context, merchant *domain.MerchantAccount, req CancelRequest) (*PaymentsResponse, error)
	Capture(ctx context.Context, merchant *domain.MerchantAccount, req CaptureRequest) (*PaymentsResponse, error)
	Sync(ctx context.Context, merchant *domain.MerchantAccount, req RetrieveRequest) (*PaymentsResponse, error)
}
