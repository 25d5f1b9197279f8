package postgres

import (
	"context"
	"fmt"

	"payment-router/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const intentColumns = `payment_id, merchant_id, status, amount, currency, amount_captured, customer_id,
	description, return_url, shipping_address_id, billing_address_id, client_secret, created_at, modified_at`

// IntentRepo implements ports.PaymentIntentRepository.
type IntentRepo struct {
	pool Pool
}

// NewIntentRepo creates a new IntentRepo.
func NewIntentRepo(pool Pool) *IntentRepo {
	return &IntentRepo{pool: pool}
}

func scanIntent(row pgx.Row) (*domain.PaymentIntent, error) {
	i := &domain.PaymentIntent{}
	err := row.Scan(
		&i.PaymentID, &i.MerchantID, &i.Status, &i.Amount, &i.Currency, &i.AmountCaptured, &i.CustomerID,
		&i.Description, &i.ReturnURL, &i.ShippingAddressID, &i.BillingAddressID, &i.ClientSecret,
		&i.CreatedAt, &i.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return i, nil
}

// Insert stores a new intent. A reused payment id yields domain.ErrDuplicate.
func (r *IntentRepo) Insert(ctx context.Context, i *domain.PaymentIntent) (*domain.PaymentIntent, error) {
	query := `INSERT INTO payment_intents (` + intentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING ` + intentColumns

	out, err := scanIntent(r.pool.QueryRow(ctx, query,
		i.PaymentID, i.MerchantID, i.Status, i.Amount, i.Currency, i.AmountCaptured, i.CustomerID,
		i.Description, i.ReturnURL, i.ShippingAddressID, i.BillingAddressID, i.ClientSecret,
	))
	if err != nil {
		return nil, translate(err, "insert payment intent %s", i.PaymentID)
	}
	return out, nil
}

// FindByPaymentIDMerchantID fetches the intent scoped to its merchant.
func (r *IntentRepo) FindByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) (*domain.PaymentIntent, error) {
	query := `SELECT ` + intentColumns + ` FROM payment_intents WHERE payment_id = $1 AND merchant_id = $2`

	out, err := scanIntent(r.pool.QueryRow(ctx, query, paymentID, merchantID))
	if err != nil {
		return nil, translate(err, "payment intent %s", paymentID)
	}
	return out, nil
}

// Update writes only the columns named by the update variant.
func (r *IntentRepo) Update(ctx context.Context, i *domain.PaymentIntent, upd domain.IntentUpdate) (*domain.PaymentIntent, error) {
	var (
		set  string
		args []any
	)
	switch u := upd.(type) {
	case domain.IntentStatusUpdate:
		set = "status = $1"
		args = []any{u.Status}
	case domain.IntentMerchantStatusUpdate:
		set = "status = $1, shipping_address_id = COALESCE($2, shipping_address_id), billing_address_id = COALESCE($3, billing_address_id)"
		args = []any{u.Status, u.ShippingAddressID, u.BillingAddressID}
	case domain.IntentCaptureUpdate:
		set = "status = $1, amount_captured = COALESCE($2, amount_captured)"
		args = []any{u.Status, u.AmountCaptured}
	default:
		return nil, fmt.Errorf("update payment intent %s: unsupported update %T", i.PaymentID, upd)
	}

	query := fmt.Sprintf(`UPDATE payment_intents SET %s, modified_at = NOW()
		WHERE payment_id = $%d AND merchant_id = $%d
		RETURNING `+intentColumns, set, len(args)+1, len(args)+2)
	args = append(args, i.PaymentID, i.MerchantID)

	out, err := scanIntent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err, "update payment intent %s", i.PaymentID)
	}
	return out, nil
}
