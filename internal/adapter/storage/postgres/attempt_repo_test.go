package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"payment-router/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAttempt() *domain.PaymentAttempt {
	now := time.Now().UTC().Truncate(time.Microsecond)
	pm := domain.PaymentMethodCard
	return &domain.PaymentAttempt{
		AttemptID:     "att_1",
		PaymentID:     "pay_123",
		MerchantID:    "m_1",
		TxnID:         "txn_1",
		Status:        domain.AttemptStatusStarted,
		Amount:        1000,
		Currency:      "USD",
		PaymentMethod: &pm,
		CaptureMethod: domain.CaptureMethodAutomatic,
		CreatedAt:     now,
		ModifiedAt:    now,
	}
}

func attemptColumnNames() []string {
	return []string{"attempt_id", "payment_id", "merchant_id", "txn_id", "status", "amount", "currency", "connector",
		"payment_method", "authentication_type", "capture_method", "connector_transaction_id", "amount_to_capture",
		"cancellation_reason", "mandate_id", "error_code", "error_message", "created_at", "modified_at"}
}

func attemptRow(a *domain.PaymentAttempt) *pgxmock.Rows {
	return pgxmock.NewRows(attemptColumnNames()).AddRow(
		a.AttemptID, a.PaymentID, a.MerchantID, a.TxnID, a.Status, a.Amount, a.Currency, a.Connector,
		a.PaymentMethod, a.AuthenticationType, a.CaptureMethod, a.ConnectorTransactionID, a.AmountToCapture,
		a.CancellationReason, a.MandateID, a.ErrorCode, a.ErrorMessage, a.CreatedAt, a.ModifiedAt,
	)
}

func TestAttemptRepo_FindLatest(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttemptRepo(mock)
	a := newTestAttempt()

	mock.ExpectQuery("SELECT .+ FROM payment_attempts .+ ORDER BY created_at DESC LIMIT 1").
		WithArgs("pay_123", "m_1").
		WillReturnRows(attemptRow(a))

	out, err := repo.FindByPaymentIDMerchantID(context.Background(), "pay_123", "m_1")
	require.NoError(t, err)
	assert.Equal(t, "att_1", out.AttemptID)
	assert.Equal(t, domain.PaymentMethodCard, *out.PaymentMethod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepo_FindByConnectorTransactionID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttemptRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM payment_attempts .+ connector_transaction_id").
		WithArgs("m_1", "ch_unknown").
		WillReturnRows(pgxmock.NewRows(attemptColumnNames()))

	_, err = repo.FindByConnectorTransactionID(context.Background(), "m_1", "ch_unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepo_Update_ConfirmWithFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttemptRepo(mock)
	a := newTestAttempt()
	conn := "stripe"
	upd := domain.AttemptConfirmUpdate{
		Status:    domain.AttemptStatusAuthorizationFailed,
		Connector: &conn,
		FailureDetail: domain.FailureDetail{
			ErrorCode:    strPtr("card_declined"),
			ErrorMessage: strPtr("Your card was declined."),
		},
	}

	want := *a
	upd.Apply(&want)

	mock.ExpectQuery(`UPDATE payment_attempts SET status = \$1, payment_method = COALESCE\(\$2, payment_method\)`).
		WithArgs(domain.AttemptStatusAuthorizationFailed, pgxmock.AnyArg(), pgxmock.AnyArg(), &conn, pgxmock.AnyArg(),
			upd.ErrorCode, upd.ErrorMessage, "att_1", "m_1").
		WillReturnRows(attemptRow(&want))

	out, err := repo.Update(context.Background(), a, upd)
	require.NoError(t, err)
	assert.Equal(t, domain.AttemptStatusAuthorizationFailed, out.Status)
	assert.Equal(t, "card_declined", *out.ErrorCode)
	assert.Equal(t, "stripe", *out.Connector)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepo_Update_VoidArgumentOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttemptRepo(mock)
	a := newTestAttempt()
	upd := domain.AttemptVoidUpdate{Status: domain.AttemptStatusVoided, CancellationReason: strPtr("duplicate")}

	mock.ExpectQuery(`cancellation_reason = COALESCE\(\$2, cancellation_reason\),\s+error_code = COALESCE\(\$3, error_code\)`).
		WithArgs(domain.AttemptStatusVoided, upd.CancellationReason, pgxmock.AnyArg(), pgxmock.AnyArg(), "att_1", "m_1").
		WillReturnError(errors.New("connection reset"))

	_, err = repo.Update(context.Background(), a, upd)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "update payment attempt att_1")
	assert.NoError(t, mock.ExpectationsWereMet())
}
