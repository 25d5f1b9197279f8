package postgres

import (
	"context"

	"payment-router/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const connectorResponseColumns = `payment_id, merchant_id, txn_id, connector_name, connector_transaction_id,
	authentication_data, encoded_data, created_at, modified_at`

// ConnectorResponseRepo implements ports.ConnectorResponseRepository.
type ConnectorResponseRepo struct {
	pool Pool
}

// NewConnectorResponseRepo creates a new ConnectorResponseRepo.
func NewConnectorResponseRepo(pool Pool) *ConnectorResponseRepo {
	return &ConnectorResponseRepo{pool: pool}
}

func scanConnectorResponse(row pgx.Row) (*domain.ConnectorResponse, error) {
	c := &domain.ConnectorResponse{}
	err := row.Scan(
		&c.PaymentID, &c.MerchantID, &c.TxnID, &c.ConnectorName, &c.ConnectorTransactionID,
		&c.AuthenticationData, &c.EncodedData, &c.CreatedAt, &c.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Insert stores a new connector response record.
func (r *ConnectorResponseRepo) Insert(ctx context.Context, c *domain.ConnectorResponse) (*domain.ConnectorResponse, error) {
	query := `INSERT INTO connector_responses (` + connectorResponseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + connectorResponseColumns

	out, err := scanConnectorResponse(r.pool.QueryRow(ctx, query,
		c.PaymentID, c.MerchantID, c.TxnID, c.ConnectorName, c.ConnectorTransactionID,
		c.AuthenticationData, c.EncodedData,
	))
	if err != nil {
		return nil, translate(err, "insert connector response %s/%s", c.PaymentID, c.TxnID)
	}
	return out, nil
}

// Find fetches the record for one attempt.
func (r *ConnectorResponseRepo) Find(ctx context.Context, paymentID, merchantID, txnID string) (*domain.ConnectorResponse, error) {
	query := `SELECT ` + connectorResponseColumns + ` FROM connector_responses
		WHERE payment_id = $1 AND merchant_id = $2 AND txn_id = $3`

	out, err := scanConnectorResponse(r.pool.QueryRow(ctx, query, paymentID, merchantID, txnID))
	if err != nil {
		return nil, translate(err, "connector response %s/%s", paymentID, txnID)
	}
	return out, nil
}

// Upsert overwrites the record keyed by (payment id, merchant id, txn id),
// preserving its original creation time.
func (r *ConnectorResponseRepo) Upsert(ctx context.Context, c *domain.ConnectorResponse) (*domain.ConnectorResponse, error) {
	query := `INSERT INTO connector_responses (` + connectorResponseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (payment_id, merchant_id, txn_id) DO UPDATE SET
			connector_name = EXCLUDED.connector_name,
			connector_transaction_id = EXCLUDED.connector_transaction_id,
			authentication_data = EXCLUDED.authentication_data,
			encoded_data = EXCLUDED.encoded_data,
			modified_at = NOW()
		RETURNING ` + connectorResponseColumns

	out, err := scanConnectorResponse(r.pool.QueryRow(ctx, query,
		c.PaymentID, c.MerchantID, c.TxnID, c.ConnectorName, c.ConnectorTransactionID,
		c.AuthenticationData, c.EncodedData,
	))
	if err != nil {
		return nil, translate(err, "upsert connector response %s/%s", c.PaymentID, c.TxnID)
	}
	return out, nil
}
