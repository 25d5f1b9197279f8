package postgres

import (
	"context"
	"testing"
	"time"

	"payment-router/internal/core/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestIntent() *domain.PaymentIntent {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.PaymentIntent{
		PaymentID:    "pay_123",
		MerchantID:   "m_1",
		Status:       domain.IntentStatusRequiresConfirmation,
		Amount:       1000,
		Currency:     "USD",
		Description:  strPtr("order 42"),
		ClientSecret: strPtr("pay_123_secret_abc"),
		CreatedAt:    now,
		ModifiedAt:   now,
	}
}

func intentColumnNames() []string {
	return []string{"payment_id", "merchant_id", "status", "amount", "currency", "amount_captured", "customer_id",
		"description", "return_url", "shipping_address_id", "billing_address_id", "client_secret", "created_at", "modified_at"}
}

func intentRow(i *domain.PaymentIntent) *pgxmock.Rows {
	return pgxmock.NewRows(intentColumnNames()).AddRow(
		i.PaymentID, i.MerchantID, i.Status, i.Amount, i.Currency, i.AmountCaptured, i.CustomerID,
		i.Description, i.ReturnURL, i.ShippingAddressID, i.BillingAddressID, i.ClientSecret,
		i.CreatedAt, i.ModifiedAt,
	)
}

func TestIntentRepo_Insert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIntentRepo(mock)
	i := newTestIntent()

	mock.ExpectQuery("INSERT INTO payment_intents").
		WithArgs(i.PaymentID, i.MerchantID, i.Status, i.Amount, i.Currency, i.AmountCaptured, i.CustomerID,
			i.Description, i.ReturnURL, i.ShippingAddressID, i.BillingAddressID, i.ClientSecret).
		WillReturnRows(intentRow(i))

	out, err := repo.Insert(context.Background(), i)
	require.NoError(t, err)
	assert.Equal(t, i.PaymentID, out.PaymentID)
	assert.Equal(t, "pay_123_secret_abc", *out.ClientSecret)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntentRepo_Insert_Duplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIntentRepo(mock)

	mock.ExpectQuery("INSERT INTO payment_intents").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err = repo.Insert(context.Background(), newTestIntent())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntentRepo_FindByPaymentIDMerchantID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIntentRepo(mock)
	i := newTestIntent()

	mock.ExpectQuery("SELECT .+ FROM payment_intents WHERE payment_id").
		WithArgs("pay_123", "m_1").
		WillReturnRows(intentRow(i))

	out, err := repo.FindByPaymentIDMerchantID(context.Background(), "pay_123", "m_1")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentStatusRequiresConfirmation, out.Status)
	assert.Equal(t, int64(1000), out.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntentRepo_FindByPaymentIDMerchantID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIntentRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM payment_intents WHERE payment_id").
		WithArgs("pay_missing", "m_1").
		WillReturnRows(pgxmock.NewRows(intentColumnNames()))

	out, err := repo.FindByPaymentIDMerchantID(context.Background(), "pay_missing", "m_1")
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntentRepo_Update_Capture(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIntentRepo(mock)
	i := newTestIntent()
	captured := int64(600)
	upd := domain.IntentCaptureUpdate{Status: domain.IntentStatusSucceeded, AmountCaptured: &captured}

	want := *i
	upd.Apply(&want)

	mock.ExpectQuery(`UPDATE payment_intents SET status = \$1, amount_captured = COALESCE\(\$2, amount_captured\)`).
		WithArgs(domain.IntentStatusSucceeded, &captured, "pay_123", "m_1").
		WillReturnRows(intentRow(&want))

	out, err := repo.Update(context.Background(), i, upd)
	require.NoError(t, err)
	assert.Equal(t, domain.IntentStatusSucceeded, out.Status)
	require.NotNil(t, out.AmountCaptured)
	assert.Equal(t, int64(600), *out.AmountCaptured)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntentRepo_Update_MerchantStatusKeepsAddresses(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIntentRepo(mock)
	i := newTestIntent()
	i.ShippingAddressID = strPtr("addr_1")
	upd := domain.IntentMerchantStatusUpdate{Status: domain.IntentStatusProcessing}

	want := *i
	upd.Apply(&want)

	mock.ExpectQuery(`shipping_address_id = COALESCE\(\$2, shipping_address_id\)`).
		WithArgs(domain.IntentStatusProcessing, pgxmock.AnyArg(), pgxmock.AnyArg(), "pay_123", "m_1").
		WillReturnRows(intentRow(&want))

	out, err := repo.Update(context.Background(), i, upd)
	require.NoError(t, err)
	assert.Equal(t, "addr_1", *out.ShippingAddressID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
