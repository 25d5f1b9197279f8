package postgres

import (
	"context"
	"fmt"

	"payment-router/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const attemptColumns = `attempt_id, payment_id, merchant_id, txn_id, status, amount, currency, connector,
	payment_method, authentication_type, capture_method, connector_transaction_id, amount_to_capture,
	cancellation_reason, mandate_id, error_code, error_message, created_at, modified_at`

// AttemptRepo implements ports.PaymentAttemptRepository.
type AttemptRepo struct {
	pool Pool
}

// NewAttemptRepo creates a new AttemptRepo.
func NewAttemptRepo(pool Pool) *AttemptRepo {
	return &AttemptRepo{pool: pool}
}

func scanAttempt(row pgx.Row) (*domain.PaymentAttempt, error) {
	a := &domain.PaymentAttempt{}
	err := row.Scan(
		&a.AttemptID, &a.PaymentID, &a.MerchantID, &a.TxnID, &a.Status, &a.Amount, &a.Currency, &a.Connector,
		&a.PaymentMethod, &a.AuthenticationType, &a.CaptureMethod, &a.ConnectorTransactionID, &a.AmountToCapture,
		&a.CancellationReason, &a.MandateID, &a.ErrorCode, &a.ErrorMessage, &a.CreatedAt, &a.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Insert stores a new attempt.
func (r *AttemptRepo) Insert(ctx context.Context, a *domain.PaymentAttempt) (*domain.PaymentAttempt, error) {
	query := `INSERT INTO payment_attempts (` + attemptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
		RETURNING ` + attemptColumns

	out, err := scanAttempt(r.pool.QueryRow(ctx, query,
		a.AttemptID, a.PaymentID, a.MerchantID, a.TxnID, a.Status, a.Amount, a.Currency, a.Connector,
		a.PaymentMethod, a.AuthenticationType, a.CaptureMethod, a.ConnectorTransactionID, a.AmountToCapture,
		a.CancellationReason, a.MandateID, a.ErrorCode, a.ErrorMessage,
	))
	if err != nil {
		return nil, translate(err, "insert payment attempt %s", a.AttemptID)
	}
	return out, nil
}

// FindByPaymentIDMerchantID returns the latest attempt of the payment.
func (r *AttemptRepo) FindByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) (*domain.PaymentAttempt, error) {
	query := `SELECT ` + attemptColumns + ` FROM payment_attempts
		WHERE payment_id = $1 AND merchant_id = $2
		ORDER BY created_at DESC LIMIT 1`

	out, err := scanAttempt(r.pool.QueryRow(ctx, query, paymentID, merchantID))
	if err != nil {
		return nil, translate(err, "payment attempt for %s", paymentID)
	}
	return out, nil
}

// FindByConnectorTransactionID looks an attempt up by the connector's reference.
func (r *AttemptRepo) FindByConnectorTransactionID(ctx context.Context, merchantID, connectorTxnID string) (*domain.PaymentAttempt, error) {
	query := `SELECT ` + attemptColumns + ` FROM payment_attempts
		WHERE merchant_id = $1 AND connector_transaction_id = $2
		ORDER BY created_at DESC LIMIT 1`

	out, err := scanAttempt(r.pool.QueryRow(ctx, query, merchantID, connectorTxnID))
	if err != nil {
		return nil, translate(err, "payment attempt with connector txn %s", connectorTxnID)
	}
	return out, nil
}

// Update writes only the columns named by the update variant.
func (r *AttemptRepo) Update(ctx context.Context, a *domain.PaymentAttempt, upd domain.AttemptUpdate) (*domain.PaymentAttempt, error) {
	var (
		set     string
		args    []any
		failure domain.FailureDetail
	)
	switch u := upd.(type) {
	case domain.AttemptConfirmUpdate:
		set = `status = $1, payment_method = COALESCE($2, payment_method),
			authentication_type = COALESCE($3, authentication_type), connector = COALESCE($4, connector),
			connector_transaction_id = COALESCE($5, connector_transaction_id)`
		args = []any{u.Status, u.PaymentMethod, u.AuthenticationType, u.Connector, u.ConnectorTransactionID}
		failure = u.FailureDetail
	case domain.AttemptVoidUpdate:
		set = "status = $1, cancellation_reason = COALESCE($2, cancellation_reason)"
		args = []any{u.Status, u.CancellationReason}
		failure = u.FailureDetail
	case domain.AttemptCaptureUpdate:
		set = "status = $1, amount_to_capture = COALESCE($2, amount_to_capture)"
		args = []any{u.Status, u.AmountToCapture}
		failure = u.FailureDetail
	case domain.AttemptSyncUpdate:
		set = "status = $1, connector_transaction_id = COALESCE($2, connector_transaction_id)"
		args = []any{u.Status, u.ConnectorTransactionID}
		failure = u.FailureDetail
	default:
		return nil, fmt.Errorf("update payment attempt %s: unsupported update %T", a.AttemptID, upd)
	}

	n := len(args)
	query := fmt.Sprintf(`UPDATE payment_attempts SET %s,
			error_code = COALESCE($%d, error_code), error_message = COALESCE($%d, error_message),
			modified_at = NOW()
		WHERE attempt_id = $%d AND merchant_id = $%d
		RETURNING `+attemptColumns, set, n+1, n+2, n+3, n+4)
	args = append(args, failure.ErrorCode, failure.ErrorMessage, a.AttemptID, a.MerchantID)

	out, err := scanAttempt(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err, "update payment attempt %s", a.AttemptID)
	}
	return out, nil
}
