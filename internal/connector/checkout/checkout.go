// Package checkout implements the Checkout.com unified payments connector.
package checkout

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"payment-router/internal/connector"
	"payment-router/internal/core/domain"
)

const Name = "checkout"

// Config holds the endpoint configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Register binds every Checkout.com flow into reg.
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
		ContentType: "application/json",
		Timeout:     b.cfg.Timeout,
	}
}

func (b base) ParseError(_ int, body []byte) (connector.ErrorResponse, error) {
	return parseError(body)
}

func (b base) request(method, path string, auth connector.Auth, payload any) (*connector.Request, error) {
	if auth.APIKey == "" {
		return nil, fmt.Errorf("checkout requires a secret key")
	}
	req := &connector.Request{
		Method:  method,
		URL:     strings.TrimRight(b.cfg.BaseURL, "/") + path,
		Headers: map[string]string{"Authorization": "Bearer " + auth.APIKey},
	}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding checkout request: %w", err)
		}
		req.Body = body
	}
	return req, nil
}

func paymentPath(id, suffix string) string {
	return "/payments/" + url.PathEscape(id) + suffix
}

type authorize struct{ base }

func (a authorize) BuildRequest(data connector.RouterData[connector.AuthorizeData], auth connector.Auth) (*connector.Request, error) {
	payload, err := buildPaymentRequest(data, auth)
	if err != nil {
		return nil, err
	}
	req, err := a.request(http.MethodPost, "/payments", auth, payload)
	if err != nil {
		return nil, err
	}
	req.Headers["Cko-Idempotency-Key"] = data.AttemptID
	return req, nil
}

func (a authorize) ParseResponse(_ connector.RouterData[connector.AuthorizeData], body []byte) (connector.PaymentsResponseData, error) {
	return parsePayment(body)
}

type void struct{ base }

func (v void) BuildRequest(data connector.RouterData[connector.VoidData], auth connector.Auth) (*connector.Request, error) {
	if data.Request.ConnectorTransactionID == "" {
		return nil, fmt.Errorf("checkout void needs a connector transaction id")
	}
	return v.request(http.MethodPost, paymentPath(data.Request.ConnectorTransactionID, "/voids"), auth, actionRequest{Reference: data.PaymentID})
}

func (v void) ParseResponse(data connector.RouterData[connector.VoidData], body []byte) (connector.PaymentsResponseData, error) {
	return parseAction(body, data.Request.ConnectorTransactionID, domain.AttemptStatusVoided)
}

type capture struct{ base }

func (c capture) BuildRequest(data connector.RouterData[connector.CaptureData], auth connector.Auth) (*connector.Request, error) {
	if data.Request.ConnectorTransactionID == "" {
		return nil, fmt.Errorf("checkout capture needs a connector transaction id")
	}
	amount := data.Request.AmountToCapture
	return c.request(http.MethodPost, paymentPath(data.Request.ConnectorTransactionID, "/captures"), auth, actionRequest{Amount: &amount, Reference: data.PaymentID})
}

func (c capture) ParseResponse(data connector.RouterData[connector.CaptureData], body []byte) (connector.PaymentsResponseData, error) {
	return parseAction(body, data.Request.ConnectorTransactionID, domain.AttemptStatusCharged)
}

type psync struct{ base }

func (p psync) BuildRequest(data connector.RouterData[connector.SyncData], auth connector.Auth) (*connector.Request, error) {
	if data.Request.ConnectorTransactionID == "" {
		return nil, fmt.Errorf("checkout sync needs a connector transaction id")
	}
	return p.request(http.MethodGet, paymentPath(data.Request.ConnectorTransactionID, ""), auth, nil)
}

func (p psync) ParseResponse(_ connector.RouterData[connector.SyncData], body []byte) (connector.PaymentsResponseData, error) {
	return parsePayment(body)
}
