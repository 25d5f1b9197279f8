package postgres

import (
	"context"

	"payment-router/internal/core/domain"
)

// ConnectorAccountRepo implements ports.MerchantConnectorAccountRepository.
type ConnectorAccountRepo struct {
	pool Pool
}

// NewConnectorAccountRepo creates a new ConnectorAccountRepo.
func NewConnectorAccountRepo(pool Pool) *ConnectorAccountRepo {
	return &ConnectorAccountRepo{pool: pool}
}

// Find returns the merchant's account for the connector, disabled or not.
func (r *ConnectorAccountRepo) Find(ctx context.Context, merchantID, connectorName string) (*domain.MerchantConnectorAccount, error) {
	query := `SELECT id, merchant_id, connector_name, auth_type, credentials_enc, disabled, created_at, updated_at
		FROM merchant_connector_accounts WHERE merchant_id = $1 AND connector_name = $2`

	a := &domain.MerchantConnectorAccount{}
	err := r.pool.QueryRow(ctx, query, merchantID, connectorName).Scan(
		&a.ID, &a.MerchantID, &a.ConnectorName, &a.AuthType, &a.CredentialsEnc, &a.Disabled,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err, "connector account %s/%s", merchantID, connectorName)
	}
	return a, nil
}
