package stripe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"payment-router/internal/connector"
	"payment-router/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method string
	path   string
	header http.Header
	form   url.Values
}

func newStripeServer(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	got := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		got.method = r.Method
		got.path = r.URL.Path
		got.header = r.Header.Clone()
		got.form, _ = url.ParseQuery(string(raw))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func setup(baseURL string) (*connector.Registry, *connector.Executor) {
	reg := connector.NewRegistry()
	Register(reg, Config{BaseURL: baseURL, Timeout: time.Second})
	return reg, connector.NewExecutor(http.DefaultClient, time.Second, nil, nil, zerolog.Nop())
}

var testAuth = connector.Auth{Type: domain.ConnectorAuthHeaderKey, APIKey: "sk_test_123"}

func authorizeRecord(auth domain.AuthenticationType) connector.RouterData[connector.AuthorizeData] {
	return connector.RouterData[connector.AuthorizeData]{
		Flow:               domain.FlowAuthorize,
		Connector:          Name,
		PaymentID:          "pay_123",
		AttemptID:          "att_1",
		AuthenticationType: auth,
		ReturnURL:          "https://merchant.example/return",
		Request: connector.AuthorizeData{
			Amount:        6540,
			Currency:      "USD",
			Confirm:       true,
			CaptureMethod: domain.CaptureMethodAutomatic,
			Card:          &connector.Card{Number: "4242424242424242", ExpMonth: "12", ExpYear: "2030", CVC: "123"},
		},
	}
}

func TestAuthorize_EncodesFormAndParsesPending(t *testing.T) {
	srv, got := newStripeServer(t, http.StatusOK, `{"id":"pi_1","status":"processing"}`)
	reg, exec := setup(srv.URL)

	integ, err := connector.Lookup[connector.AuthorizeData](reg, Name, domain.FlowAuthorize)
	require.NoError(t, err)

	out, err := connector.Execute(context.Background(), exec, integ, authorizeRecord(domain.AuthenticationNoThreeDS), testAuth, connector.Trigger)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/v1/payment_intents", got.path)
	assert.Equal(t, "Bearer sk_test_123", got.header.Get("Authorization"))
	assert.Equal(t, "att_1", got.header.Get("Idempotency-Key"))
	assert.Equal(t, "application/x-www-form-urlencoded", got.header.Get("Content-Type"))
	assert.Equal(t, "6540", got.form.Get("amount"))
	assert.Equal(t, "usd", got.form.Get("currency"))
	assert.Equal(t, "true", got.form.Get("confirm"))
	assert.Equal(t, "4242424242424242", got.form.Get("payment_method_data[card][number]"))
	assert.Equal(t, "automatic", got.form.Get("payment_method_options[card][request_three_d_secure]"))
	assert.Equal(t, "pay_123", got.form.Get("metadata[payment_id]"))

	require.NotNil(t, out.Response)
	assert.Equal(t, "pi_1", out.Response.ConnectorTransactionID)
	assert.Equal(t, domain.AttemptStatusPending, out.Response.Status)
}

func TestAuthorize_ThreeDSRedirect(t *testing.T) {
	srv, got := newStripeServer(t, http.StatusOK, `{
		"id":"pi_2","status":"requires_action",
		"next_action":{"type":"redirect_to_url","redirect_to_url":{"url":"https://hooks.stripe.com/3ds/abc"}}
	}`)
	reg, exec := setup(srv.URL)
	integ, err := connector.Lookup[connector.AuthorizeData](reg, Name, domain.FlowAuthorize)
	require.NoError(t, err)

	out, err := connector.Execute(context.Background(), exec, integ, authorizeRecord(domain.AuthenticationThreeDS), testAuth, connector.Trigger)
	require.NoError(t, err)

	assert.Equal(t, "any", got.form.Get("payment_method_options[card][request_three_d_secure]"))
	assert.Equal(t, domain.AttemptStatusPendingVbv, out.Response.Status)
	require.NotNil(t, out.Response.RedirectURL)
	assert.Equal(t, "https://hooks.stripe.com/3ds/abc", *out.Response.RedirectURL)
}

func TestAuthorize_TokenInsteadOfCard(t *testing.T) {
	srv, got := newStripeServer(t, http.StatusOK, `{"id":"pi_3","status":"succeeded"}`)
	reg, exec := setup(srv.URL)
	integ, err := connector.Lookup[connector.AuthorizeData](reg, Name, domain.FlowAuthorize)
	require.NoError(t, err)

	rec := authorizeRecord(domain.AuthenticationNoThreeDS)
	rec.Request.Card = nil
	rec.Request.Token = "pm_card_visa"

	_, err = connector.Execute(context.Background(), exec, integ, rec, testAuth, connector.Trigger)
	require.NoError(t, err)
	assert.Equal(t, "pm_card_visa", got.form.Get("payment_method"))
	assert.Empty(t, got.form.Get("payment_method_data[type]"))
}

func TestAuthorize_MissingPaymentMethodIsEncodingError(t *testing.T) {
	reg, exec := setup("http://127.0.0.1:0")
	integ, err := connector.Lookup[connector.AuthorizeData](reg, Name, domain.FlowAuthorize)
	require.NoError(t, err)

	rec := authorizeRecord(domain.AuthenticationNoThreeDS)
	rec.Request.Card = nil

	_, err = connector.Execute(context.Background(), exec, integ, rec, testAuth, connector.Trigger)
	var cErr *connector.Error
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, connector.KindRequestEncoding, cErr.Kind)
}

func TestAuthorize_DeclineError(t *testing.T) {
	srv, _ := newStripeServer(t, http.StatusPaymentRequired, `{
		"error":{"type":"card_error","code":"card_declined","decline_code":"insufficient_funds","message":"Your card has insufficient funds."}
	}`)
	reg, exec := setup(srv.URL)
	integ, err := connector.Lookup[connector.AuthorizeData](reg, Name, domain.FlowAuthorize)
	require.NoError(t, err)

	_, err = connector.Execute(context.Background(), exec, integ, authorizeRecord(domain.AuthenticationNoThreeDS), testAuth, connector.Trigger)

	var cErr *connector.Error
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, connector.KindRemoteStatus, cErr.Kind)
	assert.Equal(t, "card_declined", cErr.Code)
	assert.Equal(t, "Your card has insufficient funds.", cErr.Message)
}

func TestVoid_PostsCancelWithAcceptedReason(t *testing.T) {
	srv, got := newStripeServer(t, http.StatusOK, `{"id":"pi_1","status":"canceled"}`)
	reg, exec := setup(srv.URL)
	integ, err := connector.Lookup[connector.VoidData](reg, Name, domain.FlowVoid)
	require.NoError(t, err)

	rec := connector.RouterData[connector.VoidData]{
		Flow:    domain.FlowVoid,
		Request: connector.VoidData{ConnectorTransactionID: "pi_1", CancellationReason: "requested_by_customer"},
	}
	out, err := connector.Execute(context.Background(), exec, integ, rec, testAuth, connector.Trigger)
	require.NoError(t, err)

	assert.Equal(t, "/v1/payment_intents/pi_1/cancel", got.path)
	assert.Equal(t, "requested_by_customer", got.form.Get("cancellation_reason"))
	assert.Equal(t, domain.AttemptStatusVoided, out.Response.Status)
}

func TestVoid_DropsUnknownReason(t *testing.T) {
	srv, got := newStripeServer(t, http.StatusOK, `{"id":"pi_1","status":"canceled"}`)
	reg, exec := setup(srv.URL)
	integ, err := connector.Lookup[connector.VoidData](reg, Name, domain.FlowVoid)
	require.NoError(t, err)

	rec := connector.RouterData[connector.VoidData]{
		Flow:    domain.FlowVoid,
		Request: connector.VoidData{ConnectorTransactionID: "pi_1", CancellationReason: "changed my mind"},
	}
	_, err = connector.Execute(context.Background(), exec, integ, rec, testAuth, connector.Trigger)
	require.NoError(t, err)
	assert.Empty(t, got.form.Get("cancellation_reason"))
}

func TestCapture_SendsAmount(t *testing.T) {
	srv, got := newStripeServer(t, http.StatusOK, `{"id":"pi_1","status":"succeeded","latest_charge":"ch_1"}`)
	reg, exec := setup(srv.URL)
	integ, err := connector.Lookup[connector.CaptureData](reg, Name, domain.FlowCapture)
	require.NoError(t, err)

	rec := connector.RouterData[connector.CaptureData]{
		Flow:    domain.FlowCapture,
		Request: connector.CaptureData{ConnectorTransactionID: "pi_1", AmountToCapture: 500, Currency: "USD"},
	}
	out, err := connector.Execute(context.Background(), exec, integ, rec, testAuth, connector.Trigger)
	require.NoError(t, err)

	assert.Equal(t, "/v1/payment_intents/pi_1/capture", got.path)
	assert.Equal(t, "500", got.form.Get("amount_to_capture"))
	assert.Equal(t, domain.AttemptStatusCharged, out.Response.Status)
	require.NotNil(t, out.Response.NetworkReference)
	assert.Equal(t, "ch_1", *out.Response.NetworkReference)
}

func TestPSync_GetsIntent(t *testing.T) {
	srv, got := newStripeServer(t, http.StatusOK, `{"id":"pi_1","status":"requires_capture"}`)
	reg, exec := setup(srv.URL)
	integ, err := connector.Lookup[connector.SyncData](reg, Name, domain.FlowPSync)
	require.NoError(t, err)

	rec := connector.RouterData[connector.SyncData]{
		Flow:    domain.FlowPSync,
		Request: connector.SyncData{ConnectorTransactionID: "pi_1"},
	}
	out, err := connector.Execute(context.Background(), exec, integ, rec, testAuth, connector.Trigger)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/v1/payment_intents/pi_1", got.path)
	assert.Equal(t, domain.AttemptStatusAuthorized, out.Response.Status)
}

func TestAttemptStatusMapping(t *testing.T) {
	tests := map[string]domain.AttemptStatus{
		"succeeded":               domain.AttemptStatusCharged,
		"requires_capture":        domain.AttemptStatusAuthorized,
		"processing":              domain.AttemptStatusPending,
		"requires_action":         domain.AttemptStatusPendingVbv,
		"requires_confirmation":   domain.AttemptStatusStarted,
		"requires_payment_method": domain.AttemptStatusAuthorizationFailed,
		"canceled":                domain.AttemptStatusVoided,
		"something_new":           domain.AttemptStatusFailure,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, attemptStatus(in))
		})
	}
}

func TestParsePaymentIntent_LastPaymentError(t *testing.T) {
	out, err := parsePaymentIntent([]byte(`{
		"id":"pi_9","status":"requires_payment_method",
		"last_payment_error":{"code":"card_declined","decline_code":"do_not_honor","message":"Declined"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, domain.AttemptStatusAuthorizationFailed, out.Status)
	assert.Equal(t, "do_not_honor", *out.ErrorCode)
	assert.Equal(t, "Declined", *out.ErrorMessage)
}

func TestParsePaymentIntent_MissingID(t *testing.T) {
	_, err := parsePaymentIntent([]byte(`{"status":"succeeded"}`))
	assert.Error(t, err)
}
