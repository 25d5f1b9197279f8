package postgres

import (
	"context"
	"testing"
	"time"

	"payment-router/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectorResponseRepo_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewConnectorResponseRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	c := &domain.ConnectorResponse{
		PaymentID:              "pay_123",
		MerchantID:             "m_1",
		TxnID:                  "txn_1",
		ConnectorName:          strPtr("stripe"),
		ConnectorTransactionID: strPtr("pi_1"),
		AuthenticationData:     []byte(`{"redirect_url":"https://acs.example/3ds"}`),
		CreatedAt:              now,
		ModifiedAt:             now,
	}

	mock.ExpectQuery("INSERT INTO connector_responses .+ ON CONFLICT \\(payment_id, merchant_id, txn_id\\) DO UPDATE").
		WithArgs(c.PaymentID, c.MerchantID, c.TxnID, c.ConnectorName, c.ConnectorTransactionID,
			c.AuthenticationData, c.EncodedData).
		WillReturnRows(pgxmock.NewRows([]string{"payment_id", "merchant_id", "txn_id", "connector_name",
			"connector_transaction_id", "authentication_data", "encoded_data", "created_at", "modified_at"}).
			AddRow(c.PaymentID, c.MerchantID, c.TxnID, c.ConnectorName, c.ConnectorTransactionID,
				c.AuthenticationData, c.EncodedData, c.CreatedAt, c.ModifiedAt))

	out, err := repo.Upsert(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "pi_1", *out.ConnectorTransactionID)
	assert.JSONEq(t, `{"redirect_url":"https://acs.example/3ds"}`, string(out.AuthenticationData))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepo_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAddressRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	a := &domain.Address{AddressID: "addr_1", MerchantID: "m_1", City: strPtr("Berlin"), CreatedAt: now, ModifiedAt: now}
	upd := domain.AddressUpdate{City: strPtr("Hamburg")}

	want := *a
	upd.Apply(&want)

	mock.ExpectQuery("UPDATE addresses SET").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), upd.City, pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "addr_1").
		WillReturnRows(pgxmock.NewRows([]string{"address_id", "merchant_id", "customer_id", "line1", "line2",
			"city", "state", "zip", "country", "first_name", "last_name", "created_at", "modified_at"}).
			AddRow(want.AddressID, want.MerchantID, want.CustomerID, want.Line1, want.Line2,
				want.City, want.State, want.Zip, want.Country, want.FirstName, want.LastName,
				want.CreatedAt, want.ModifiedAt))

	out, err := repo.Update(context.Background(), a, upd)
	require.NoError(t, err)
	assert.Equal(t, "Hamburg", *out.City)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	m := &domain.MerchantAccount{
		MerchantID:       "m_1",
		MerchantName:     "Test Shop",
		DefaultConnector: strPtr("stripe"),
		Status:           domain.MerchantStatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	mock.ExpectQuery("SELECT .+ FROM merchant_accounts WHERE merchant_id").
		WithArgs("m_1").
		WillReturnRows(pgxmock.NewRows([]string{"merchant_id", "merchant_name", "default_connector", "return_url",
			"status", "created_at", "updated_at"}).
			AddRow(m.MerchantID, m.MerchantName, m.DefaultConnector, m.ReturnURL, m.Status, m.CreatedAt, m.UpdatedAt))

	out, err := repo.GetByID(context.Background(), "m_1")
	require.NoError(t, err)
	assert.True(t, out.IsActive())
	assert.Equal(t, "stripe", *out.DefaultConnector)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectorAccountRepo_Find(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewConnectorAccountRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	id := uuid.New()
	cols := []string{"id", "merchant_id", "connector_name", "auth_type", "credentials_enc", "disabled", "created_at", "updated_at"}

	mock.ExpectQuery("SELECT .+ FROM merchant_connector_accounts").
		WithArgs("m_1", "checkout").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(id, "m_1", "checkout", domain.ConnectorAuthBodyKey, "enc", false, now, now))

	out, err := repo.Find(context.Background(), "m_1", "checkout")
	require.NoError(t, err)
	assert.Equal(t, id, out.ID)
	assert.Equal(t, domain.ConnectorAuthBodyKey, out.AuthType)

	mock.ExpectQuery("SELECT .+ FROM merchant_connector_accounts").
		WithArgs("m_1", "adyen").
		WillReturnRows(pgxmock.NewRows(cols))

	_, err = repo.Find(context.Background(), "m_1", "adyen")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck_Ping(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	h := NewHealthCheck(mock)
	mock.ExpectExec("SELECT 1").WillReturnResult(pgxmock.NewResult("SELECT", 1))

	assert.NoError(t, h.Ping(context.Background()))
	assert.Equal(t, "postgresql", h.Name())
	assert.NoError(t, mock.ExpectationsWereMet())
}
