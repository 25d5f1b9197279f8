package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"

	"payment-router/internal/core/domain"
)

// Repositories return an error wrapping domain.ErrNotFound when a keyed
// record is absent and domain.ErrDuplicate when an insert collides.

// PaymentIntentRepository defines persistence operations for payment intents.
type PaymentIntentRepository interface {
	Insert(ctx context.Context, intent *domain.PaymentIntent) (*domain.PaymentIntent, error)
	FindByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) (*domain.PaymentIntent, error)
	Update(ctx context.Context, intent *domain.PaymentIntent, upd domain.IntentUpdate) (*domain.PaymentIntent, error)
}

// PaymentAttemptRepository defines persistence operations for payment attempts.
// FindByPaymentIDMerchantID returns the most recent attempt of the payment.
type PaymentAttemptRepository interface {
	Insert(ctx context.Context, attempt *domain.PaymentAttempt) (*domain.PaymentAttempt, error)
	FindByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) (*domain.PaymentAttempt, error)
	FindByConnectorTransactionID(ctx context.Context, merchantID, connectorTxnID string) (*domain.PaymentAttempt, error)
	Update(ctx context.Context, attempt *domain.PaymentAttempt, upd domain.AttemptUpdate) (*domain.PaymentAttempt, error)
}

// ConnectorResponseRepository defines persistence for connector response records.
type ConnectorResponseRepository interface {
	Insert(ctx context.Context, resp *domain.ConnectorResponse) (*domain.ConnectorResponse, error)
	Find(ctx context.Context, paymentID, merchantID, txnID string) (*domain.ConnectorResponse, error)
	// Upsert overwrites the record keyed by (payment id, merchant id, txn id).
	Upsert(ctx context.Context, resp *domain.ConnectorResponse) (*domain.ConnectorResponse, error)
}

// AddressRepository defines persistence operations for addresses.
type AddressRepository interface {
	Insert(ctx context.Context, addr *domain.Address) (*domain.Address, error)
	FindByID(ctx context.Context, addressID string) (*domain.Address, error)
	Update(ctx context.Context, addr *domain.Address, upd domain.AddressUpdate) (*domain.Address, error)
}

// MerchantRepository defines read access to merchant accounts.
type MerchantRepository interface {
	GetByID(ctx context.Context, merchantID string) (*domain.MerchantAccount, error)
}

// MerchantConnectorAccountRepository resolves a merchant's credentials for a connector.
type MerchantConnectorAccountRepository interface {
	Find(ctx context.Context, merchantID, connectorName string) (*domain.MerchantConnectorAccount, error)
}
