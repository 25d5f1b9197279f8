package operations

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"payment-router/internal/adapter/storage/memory"
	"payment-router/internal/connector"
	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"
	"payment-router/internal/payments"

	"github.com/rs/zerolog"
)

const testConnector = "fake"

// fakeFlow is a JSON connector that posts every flow to <base>/<flow>.
type fakeFlow[Req any] struct {
	baseURL string
	timeout time.Duration
}

func (f fakeFlow[Req]) Metadata() connector.Metadata {
	return connector.Metadata{
		Name:        testConnector,
		BaseURL:     f.baseURL,
		AuthType:    domain.ConnectorAuthHeaderKey,
		ContentType: "application/json",
		Timeout:     f.timeout,
	}
}

func (f fakeFlow[Req]) BuildRequest(data connector.RouterData[Req], auth connector.Auth) (*connector.Request, error) {
	body, err := json.Marshal(map[string]any{"payment_id": data.PaymentID, "amount": data.Amount})
	if err != nil {
		return nil, err
	}
	return &connector.Request{
		Method:  http.MethodPost,
		URL:     f.baseURL + "/" + string(data.Flow),
		Headers: map[string]string{"Authorization": "Bearer " + auth.APIKey},
		Body:    body,
	}, nil
}

func (f fakeFlow[Req]) ParseResponse(_ connector.RouterData[Req], body []byte) (connector.PaymentsResponseData, error) {
	var out struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		ErrorCode string `json:"error_code"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return connector.PaymentsResponseData{}, err
	}
	resp := connector.PaymentsResponseData{ConnectorTransactionID: out.ID, Status: domain.AttemptStatus(out.Status)}
	if out.ErrorCode != "" {
		resp.ErrorCode = &out.ErrorCode
	}
	return resp, nil
}

func (f fakeFlow[Req]) ParseError(_ int, body []byte) (connector.ErrorResponse, error) {
	var out struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return connector.ErrorResponse{}, err
	}
	return connector.ErrorResponse{Code: out.Code, Message: out.Message}, nil
}

// plainCredentials returns fixed credentials for any ciphertext.
type plainCredentials struct{}

func (plainCredentials) Encrypt(s string) (string, error) { return s, nil }
func (plainCredentials) Decrypt(string) (string, error)   { return `{"api_key":"sk_test"}`, nil }

type testEnv struct {
	store    *memory.Store
	core     *payments.Core
	calls    atomic.Int32
	merchant *domain.MerchantAccount

	mu       sync.Mutex
	statuses map[string]string // flow -> status the fake connector reports
	handler  http.HandlerFunc  // overrides the default behavior when set
}

func (e *testEnv) setStatus(flow, status string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.statuses[flow] = status
}

func (e *testEnv) setHandler(h http.HandlerFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handler = h
}

func newTestEnv(t *testing.T, merchantID string) *testEnv {
	t.Helper()
	env := &testEnv{
		store: memory.NewStore(),
		statuses: map[string]string{
			"authorize": "pending",
			"void":      "voided",
			"capture":   "charged",
			"psync":     "charged",
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.calls.Add(1)
		env.mu.Lock()
		handler := env.handler
		status := env.statuses[strings.TrimPrefix(r.URL.Path, "/")]
		env.mu.Unlock()

		if handler != nil {
			handler(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "ch_remote_1", "status": status})
	}))
	t.Cleanup(srv.Close)

	reg := connector.NewRegistry()
	timeout := 200 * time.Millisecond
	connector.Register[connector.AuthorizeData](reg, testConnector, domain.FlowAuthorize, fakeFlow[connector.AuthorizeData]{srv.URL, timeout})
	connector.Register[connector.VoidData](reg, testConnector, domain.FlowVoid, fakeFlow[connector.VoidData]{srv.URL, timeout})
	connector.Register[connector.CaptureData](reg, testConnector, domain.FlowCapture, fakeFlow[connector.CaptureData]{srv.URL, timeout})
	connector.Register[connector.SyncData](reg, testConnector, domain.FlowPSync, fakeFlow[connector.SyncData]{srv.URL, timeout})

	env.store.ConnectorAccounts.Put(domain.MerchantConnectorAccount{
		MerchantID:     merchantID,
		ConnectorName:  testConnector,
		AuthType:       domain.ConnectorAuthHeaderKey,
		CredentialsEnc: "ciphertext",
	})
	defaultConnector := testConnector
	env.merchant = &domain.MerchantAccount{
		MerchantID:       merchantID,
		MerchantName:     "Test Shop",
		DefaultConnector: &defaultConnector,
		Status:           domain.MerchantStatusActive,
	}
	env.store.Merchants.Put(*env.merchant)

	env.core = payments.NewCore(payments.Deps{
		Store:      env.store.PaymentStore(),
		Accounts:   env.store.ConnectorAccounts,
		Encryption: plainCredentials{},
		Registry:   reg,
		Executor:   connector.NewExecutor(srv.Client(), time.Second, nil, nil, zerolog.Nop()),
	}, zerolog.Nop())
	return env
}

func ptr[T any](v T) *T { return &v }

func testCard() *ports.PaymentMethodData {
	return &ports.PaymentMethodData{Card: &ports.Card{
		Number:   "4242424242424242",
		ExpMonth: "12",
		ExpYear:  "2030",
		CVC:      "123",
	}}
}

func createRequest(paymentID string) ports.PaymentsRequest {
	return ports.PaymentsRequest{
		PaymentID: ptr(paymentID),
		Amount:    ptr(int64(1000)),
		Currency:  ptr("USD"),
		Confirm:   ptr(false),
	}
}

func confirmRequest(paymentID string, auth domain.AuthenticationType) ports.PaymentsRequest {
	return ports.PaymentsRequest{
		PaymentID:          ptr(paymentID),
		PaymentMethod:      ptr(domain.PaymentMethodCard),
		PaymentMethodData:  testCard(),
		AuthenticationType: ptr(auth),
	}
}
