// Package payments drives payment operations through the four-stage pipeline
// and dispatches connector calls.
package payments

import (
	"payment-router/internal/connector"
	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"
)

// OutcomeKind is the result of the dispatcher for one pipeline run.
type OutcomeKind int

const (
	OutcomeSkipped OutcomeKind = iota
	OutcomeSuccess
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "skipped"
	}
}

// ConnectorOutcome is what the dispatcher merged into the working state.
type ConnectorOutcome struct {
	Kind      OutcomeKind
	Connector string
	Response  *connector.PaymentsResponseData
	Err       *connector.Error
}

// Declined reports a call the connector accepted while declining the payment.
func (o ConnectorOutcome) Declined() bool {
	if o.Kind != OutcomeSuccess || o.Response == nil {
		return false
	}
	switch o.Response.Status {
	case domain.AttemptStatusAuthorizationFailed,
		domain.AttemptStatusCaptureFailed,
		domain.AttemptStatusVoidFailed,
		domain.AttemptStatusFailure:
		return true
	}
	return false
}

// FailureDetail extracts the connector error code and message, if any.
func (o ConnectorOutcome) FailureDetail() domain.FailureDetail {
	switch {
	case o.Kind == OutcomeFailure && o.Err != nil:
		code, msg := o.Err.ErrorCode(), o.Err.ErrorMessage()
		return domain.FailureDetail{ErrorCode: &code, ErrorMessage: &msg}
	case o.Kind == OutcomeSuccess && o.Response != nil:
		return domain.FailureDetail{ErrorCode: o.Response.ErrorCode, ErrorMessage: o.Response.ErrorMessage}
	}
	return domain.FailureDetail{}
}

// ConnectorTransactionID returns the id reported on success.
func (o ConnectorOutcome) ConnectorTransactionID() *string {
	if o.Kind != OutcomeSuccess || o.Response == nil || o.Response.ConnectorTransactionID == "" {
		return nil
	}
	id := o.Response.ConnectorTransactionID
	return &id
}

// PaymentData is the working state threaded through every stage of one
// pipeline run. It is discarded when the run ends.
type PaymentData struct {
	Flow              domain.Flow
	Intent            *domain.PaymentIntent
	Attempt           *domain.PaymentAttempt
	ConnectorResponse *domain.ConnectorResponse
	Amount            int64
	Currency          string
	Shipping          *domain.Address
	Billing           *domain.Address
	ShippingDetails   *ports.AddressDetails // pending change, written by UpdateTracker
	BillingDetails    *ports.AddressDetails // pending change, written by UpdateTracker
	MandateID         *string
	SetupMandate      *ports.MandateData
	Token             *string
	Confirm           *bool
	PaymentMethodData *ports.PaymentMethodData
	ForceSync         bool

	CancellationReason *string
	AmountToCapture    *int64

	// PreviousStatus is the intent status loaded by GetTracker.
	PreviousStatus domain.IntentStatus
	Outcome        ConnectorOutcome
}
