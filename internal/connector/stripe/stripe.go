// Package stripe implements the Stripe PaymentIntents connector.
package stripe

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"payment-router/internal/connector"
	"payment-router/internal/core/domain"
)

const Name = "stripe"

// Config holds the endpoint configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Register binds every Stripe flow into reg.
func Register(reg *connector.Registry, cfg Config) {
	b := base{cfg: cfg}
	connector.Register[connector.AuthorizeData](reg, Name, domain.FlowAuthorize, authorize{b})
	connector.Register[connector.VoidData](reg, Name, domain.FlowVoid, void{b})
	connector.Register[connector.CaptureData](reg, Name, domain.FlowCapture, capture{b})
	connector.Register[connector.SyncData](reg, Name, domain.FlowPSync, psync{b})
}

type base struct {
	cfg Config
}

func (b base) Metadata() connector.Metadata {
	return connector.Metadata{
		Name:        Name,
		BaseURL:     b.cfg.BaseURL,
		AuthType:    domain.ConnectorAuthHeaderKey,
		ContentType: "application/x-www-form-urlencoded",
		Timeout:     b.cfg.Timeout,
	}
}

func (b base) ParseError(_ int, body []byte) (connector.ErrorResponse, error) {
	return parseError(body)
}

func (b base) url(path string) string {
	return strings.TrimRight(b.cfg.BaseURL, "/") + path
}

func (b base) request(method, path string, auth connector.Auth, idempotencyKey string, form url.Values) (*connector.Request, error) {
	if auth.APIKey == "" {
		return nil, fmt.Errorf("stripe requires an api key")
	}
	headers := map[string]string{
		"Authorization": "Bearer " + auth.APIKey,
	}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}
	req := &connector.Request{Method: method, URL: b.url(path), Headers: headers}
	if form != nil {
		req.Body = []byte(form.Encode())
	}
	return req, nil
}

type authorize struct{ base }

func (a authorize) BuildRequest(data connector.RouterData[connector.AuthorizeData], auth connector.Auth) (*connector.Request, error) {
	form, err := authorizeForm(data)
	if err != nil {
		return nil, err
	}
	return a.request(http.MethodPost, "/v1/payment_intents", auth, data.AttemptID, form)
}

func (a authorize) ParseResponse(_ connector.RouterData[connector.AuthorizeData], body []byte) (connector.PaymentsResponseData, error) {
	return parsePaymentIntent(body)
}

type void struct{ base }

func (v void) BuildRequest(data connector.RouterData[connector.VoidData], auth connector.Auth) (*connector.Request, error) {
	if data.Request.ConnectorTransactionID == "" {
		return nil, fmt.Errorf("stripe void needs a connector transaction id")
	}
	form := url.Values{}
	if reason := cancellationReason(data.Request.CancellationReason); reason != "" {
		form.Set("cancellation_reason", reason)
	}
	path := "/v1/payment_intents/" + url.PathEscape(data.Request.ConnectorTransactionID) + "/cancel"
	return v.request(http.MethodPost, path, auth, "", form)
}

func (v void) ParseResponse(_ connector.RouterData[connector.VoidData], body []byte) (connector.PaymentsResponseData, error) {
	return parsePaymentIntent(body)
}

type capture struct{ base }

func (c capture) BuildRequest(data connector.RouterData[connector.CaptureData], auth connector.Auth) (*connector.Request, error) {
	if data.Request.ConnectorTransactionID == "" {
		return nil, fmt.Errorf("stripe capture needs a connector transaction id")
	}
	form := url.Values{}
	form.Set("amount_to_capture", strconv.FormatInt(data.Request.AmountToCapture, 10))
	path := "/v1/payment_intents/" + url.PathEscape(data.Request.ConnectorTransactionID) + "/capture"
	return c.request(http.MethodPost, path, auth, "", form)
}

func (c capture) ParseResponse(_ connector.RouterData[connector.CaptureData], body []byte) (connector.PaymentsResponseData, error) {
	return parsePaymentIntent(body)
}

type psync struct{ base }

func (p psync) BuildRequest(data connector.RouterData[connector.SyncData], auth connector.Auth) (*connector.Request, error) {
	if data.Request.ConnectorTransactionID == "" {
		return nil, fmt.Errorf("stripe sync needs a connector transaction id")
	}
	return p.request(http.MethodGet, "/v1/payment_intents/"+url.PathEscape(data.Request.ConnectorTransactionID), auth, "", nil)
}

func (p psync) ParseResponse(_ connector.RouterData[connector.SyncData], body []byte) (connector.PaymentsResponseData, error) {
	return parsePaymentIntent(body)
}
