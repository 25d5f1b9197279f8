// Package connector defines the contract every payment connector implements
// and the engine that executes one connector call for one flow.
package connector

import (
	"time"

	"payment-router/internal/core/domain"
)

// Metadata is the static description of a connector.
type Metadata struct {
	Name        string
	BaseURL     string
	AuthType    domain.ConnectorAuthType
	ContentType string
	Timeout     time.Duration // zero falls back to the executor default
}

// Auth holds decrypted merchant credentials for one connector.
type Auth struct {
	Type   domain.ConnectorAuthType
	APIKey string
	Key1   string // secondary identifier some connectors require, e.g. a processing channel
}

// Request is the wire request produced by an integration.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// ErrorResponse is the connector's own description of a failed call.
type ErrorResponse struct {
	Code    string
	Message string
	Reason  *string
}

// Integration is the per (connector, flow) strategy. Implementations must be
// stateless; one value is shared by all concurrent invocations.
type Integration[Req any] interface {
	Metadata() Metadata
	BuildRequest(data RouterData[Req], auth Auth) (*Request, error)
	ParseResponse(data RouterData[Req], body []byte) (PaymentsResponseData, error)
	ParseError(statusCode int, body []byte) (ErrorResponse, error)
}

// CallAction decides whether a dispatcher invocation reaches the network.
type CallAction int

const (
	Trigger CallAction = iota
	Skip
)

func (a CallAction) String() string {
	if a == Skip {
		return "skip"
	}
	return "trigger"
}
