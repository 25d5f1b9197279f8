package payments

import (
	"context"

	"payment-router/internal/connector"
	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"
)

// Store groups the repositories the pipeline stages read and write.
type Store struct {
	Intents            ports.PaymentIntentRepository
	Attempts           ports.PaymentAttemptRepository
	ConnectorResponses ports.ConnectorResponseRepository
	Addresses          ports.AddressRepository
}

// ValidateResult is the output of ValidateRequest.
type ValidateResult struct {
	MerchantID  string
	PaymentID   ports.PaymentIDType
	MandateType *domain.MandateType
}

// Operation is one payment lifecycle operation. Req is the inbound request
// type and FReq the request half of the connector flow it dispatches.
//
// Stages are invoked strictly in order by Run. ValidateRequest must not touch
// storage; GetTracker must reject incompatible states before writing anything;
// ConstructFlowSpecificData is a pure transform.
type Operation[Req, FReq any] interface {
	Name() string
	ValidateRequest(req Req, merchant *domain.MerchantAccount) (*ValidateResult, error)
	GetTracker(ctx context.Context, store Store, paymentID ports.PaymentIDType, merchantID string, connectorHint *string, req Req, mandateType *domain.MandateType) (*PaymentData, *domain.CustomerDetails, error)
	ConstructFlowSpecificData(data *PaymentData, connectorName string, merchant *domain.MerchantAccount) (connector.RouterData[FReq], error)
	UpdateTracker(ctx context.Context, store Store, paymentID ports.PaymentIDType, data *PaymentData, customer *domain.CustomerDetails) (*PaymentData, error)
}

// ConnectorCaller is implemented by operations that decide from the loaded
// state whether the connector needs to be called at all.
type ConnectorCaller interface {
	ShouldCallConnector(data *PaymentData) bool
}

// RunOptions tunes one pipeline run.
type RunOptions struct {
	ConnectorHint *string
	CallAction    connector.CallAction
}
