package connector

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"payment-router/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoIntegration is a JSON connector used to exercise the executor.
type echoIntegration struct {
	baseURL  string
	timeout  time.Duration
	buildErr error
}

func (i echoIntegration) Metadata() Metadata {
	return Metadata{
		Name:        "echo",
		BaseURL:     i.baseURL,
		AuthType:    domain.ConnectorAuthHeaderKey,
		ContentType: "application/json",
		Timeout:     i.timeout,
	}
}

func (i echoIntegration) BuildRequest(data RouterData[VoidData], auth Auth) (*Request, error) {
	if i.buildErr != nil {
		return nil, i.buildErr
	}
	body, err := json.Marshal(map[string]string{"id": data.Request.ConnectorTransactionID})
	if err != nil {
		return nil, err
	}
	return &Request{
		Method:  http.MethodPost,
		URL:     i.baseURL + "/void",
		Headers: map[string]string{"Authorization": "Bearer " + auth.APIKey},
		Body:    body,
	}, nil
}

func (i echoIntegration) ParseResponse(_ RouterData[VoidData], body []byte) (PaymentsResponseData, error) {
	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return PaymentsResponseData{}, err
	}
	return PaymentsResponseData{ConnectorTransactionID: out.ID, Status: domain.AttemptStatus(out.Status)}, nil
}

func (i echoIntegration) ParseError(_ int, body []byte) (ErrorResponse, error) {
	var out struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return ErrorResponse{}, err
	}
	return ErrorResponse{Code: out.Code, Message: out.Message}, nil
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveConnectorCall(_, _, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func voidRecord() RouterData[VoidData] {
	return RouterData[VoidData]{
		Flow:      domain.FlowVoid,
		Connector: "echo",
		PaymentID: "pay_123",
		Status:    domain.AttemptStatusPending,
		Request:   VoidData{ConnectorTransactionID: "txn_1"},
	}
}

func newTestExecutor(obs Observer) *Executor {
	return NewExecutor(http.DefaultClient, 2*time.Second, obs, nil, zerolog.Nop())
}

func TestExecute_Success(t *testing.T) {
	var gotAuth, gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{"id":"txn_1","status":"voided"}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	out, err := Execute(context.Background(), newTestExecutor(obs), echoIntegration{baseURL: srv.URL}, voidRecord(), Auth{APIKey: "sk_test"}, Trigger)
	require.NoError(t, err)

	require.NotNil(t, out.Response)
	assert.Equal(t, "txn_1", out.Response.ConnectorTransactionID)
	assert.Equal(t, domain.AttemptStatusVoided, out.Response.Status)
	assert.Equal(t, "Bearer sk_test", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"id":"txn_1"}`, gotBody)
	assert.Equal(t, []string{"success"}, obs.outcomes)
}

func TestExecute_SkipMakesNoCall(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	in := voidRecord()
	out, err := Execute(context.Background(), newTestExecutor(obs), echoIntegration{baseURL: srv.URL}, in, Auth{}, Skip)
	require.NoError(t, err)

	assert.Equal(t, in, out)
	assert.Nil(t, out.Response)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
	assert.Empty(t, obs.outcomes)
}

func TestExecute_RemoteStatusCarriesConnectorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"code":"card_declined","message":"Your card was declined."}`))
	}))
	defer srv.Close()

	in := voidRecord()
	out, err := Execute(context.Background(), newTestExecutor(nil), echoIntegration{baseURL: srv.URL}, in, Auth{}, Trigger)
	require.Error(t, err)
	assert.Equal(t, in, out, "record is returned unchanged on failure")

	var cErr *Error
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, KindRemoteStatus, cErr.Kind)
	assert.Equal(t, http.StatusPaymentRequired, cErr.StatusCode)
	assert.Equal(t, "card_declined", cErr.Code)
	assert.Equal(t, "Your card was declined.", cErr.Message)

	appErr := cErr.PaymentFailed()
	assert.Equal(t, "PAY_004", appErr.Code)
	assert.Equal(t, "card_declined: Your card was declined.", appErr.Reason)
}

func TestExecute_RemoteStatusWithUnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	_, err := Execute(context.Background(), newTestExecutor(nil), echoIntegration{baseURL: srv.URL}, voidRecord(), Auth{}, Trigger)

	var cErr *Error
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, KindRemoteStatus, cErr.Kind)
	assert.Empty(t, cErr.Code)
	assert.Equal(t, "remote_status", cErr.ErrorCode())
	assert.Empty(t, cErr.PaymentFailed().Reason)
}

func TestExecute_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	_, err := Execute(context.Background(), newTestExecutor(obs), echoIntegration{baseURL: srv.URL}, voidRecord(), Auth{}, Trigger)

	var cErr *Error
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, KindMalformedResponse, cErr.Kind)
	assert.Equal(t, []string{"malformed_response"}, obs.outcomes)
}

func TestExecute_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := Execute(context.Background(), newTestExecutor(nil), echoIntegration{baseURL: srv.URL, timeout: 50 * time.Millisecond}, voidRecord(), Auth{}, Trigger)

	var cErr *Error
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, KindTimeout, cErr.Kind)
	assert.Equal(t, "timeout", cErr.ErrorCode())
}

func TestExecute_Transport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := Execute(context.Background(), newTestExecutor(nil), echoIntegration{baseURL: url}, voidRecord(), Auth{}, Trigger)

	var cErr *Error
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, KindTransport, cErr.Kind)
}

func TestExecute_RequestEncoding(t *testing.T) {
	_, err := Execute(context.Background(), newTestExecutor(nil), echoIntegration{buildErr: errors.New("missing card")}, voidRecord(), Auth{}, Trigger)

	var cErr *Error
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, KindRequestEncoding, cErr.Kind)
}

func TestExecute_CallerCancellationDoesNotAbortCall(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{"id":"txn_1","status":"voided"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()

	out, err := Execute(ctx, newTestExecutor(nil), echoIntegration{baseURL: srv.URL}, voidRecord(), Auth{}, Trigger)
	require.NoError(t, err)
	require.NotNil(t, out.Response)
	assert.Equal(t, domain.AttemptStatusVoided, out.Response.Status)
}

func TestExecute_FallsBackToDefaultTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	exec := NewExecutor(http.DefaultClient, 50*time.Millisecond, nil, nil, zerolog.Nop())
	_, err := Execute(context.Background(), exec, echoIntegration{baseURL: srv.URL}, voidRecord(), Auth{}, Trigger)

	var cErr *Error
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, KindTimeout, cErr.Kind)
}
