package postgres

import (
	"context"

	"payment-router/internal/core/domain"
)

// MerchantRepo implements ports.MerchantRepository.
type MerchantRepo struct {
	pool Pool
}

// NewMerchantRepo creates a new MerchantRepo.
func NewMerchantRepo(pool Pool) *MerchantRepo {
	return &MerchantRepo{pool: pool}
}

// GetByID fetches a merchant account by its id.
func (r *MerchantRepo) GetByID(ctx context.Context, merchantID string) (*domain.MerchantAccount, error) {
	query := `SELECT merchant_id, merchant_name, default_connector, return_url, status, created_at, updated_at
		FROM merchant_accounts WHERE merchant_id = $1`

	m := &domain.MerchantAccount{}
	err := r.pool.QueryRow(ctx, query, merchantID).Scan(
		&m.MerchantID, &m.MerchantName, &m.DefaultConnector, &m.ReturnURL, &m.Status,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err, "merchant %s", merchantID)
	}
	return m, nil
}
