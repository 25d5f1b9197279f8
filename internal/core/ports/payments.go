package ports

import (
	"time"

	"payment-router/internal/core/domain"
)

// PaymentIDKind tells GetTracker how to resolve a payment reference.
type PaymentIDKind int

const (
	PaymentIDIntent PaymentIDKind = iota
	PaymentIDConnectorTransaction
)

// PaymentIDType is a payment reference together with its kind.
type PaymentIDType struct {
	Kind  PaymentIDKind
	Value string
}

// IntentID references a payment by its merchant-facing payment id.
func IntentID(id string) PaymentIDType {
	return PaymentIDType{Kind: PaymentIDIntent, Value: id}
}

// ConnectorTransactionID references a payment by the connector's transaction id.
func ConnectorTransactionID(id string) PaymentIDType {
	return PaymentIDType{Kind: PaymentIDConnectorTransaction, Value: id}
}

// Card holds raw card data. It is forwarded to the connector and never persisted.
type Card struct {
	Number     string
	ExpMonth   string
	ExpYear    string
	CVC        string
	HolderName *string
}

// PaymentMethodData is either raw card data or a connector-side token.
type PaymentMethodData struct {
	Card  *Card
	Token *string
}

// AddressDetails is an address supplied inline with a request.
type AddressDetails struct {
	Line1     *string
	Line2     *string
	City      *string
	State     *string
	Zip       *string
	Country   *string
	FirstName *string
	LastName  *string
}

// MandateData requests a mandate to be set up with this payment.
type MandateData struct {
	Type               domain.MandateType
	CustomerAcceptance bool
}

// PaymentsRequest drives Create and Confirm.
type PaymentsRequest struct {
	PaymentID          *string
	MerchantID         *string
	Amount             *int64
	Currency           *string
	Confirm            *bool
	Connector          *string
	ClientSecret       *string
	CustomerID         *string
	Name               *string
	Email              *string
	Phone              *string
	Description        *string
	ReturnURL          *string
	PaymentMethod      *domain.PaymentMethodType
	PaymentMethodData  *PaymentMethodData
	AuthenticationType *domain.AuthenticationType
	CaptureMethod      *domain.CaptureMethod
	Shipping           *AddressDetails
	Billing            *AddressDetails
	MandateID          *string
	MandateData        *MandateData
}

// CancelRequest voids an authorized payment.
type CancelRequest struct {
	PaymentID          string
	MerchantID         *string
	CancellationReason *string
}

// CaptureRequest captures an authorized payment; nil AmountToCapture captures the full amount.
type CaptureRequest struct {
	PaymentID       string
	MerchantID      *string
	AmountToCapture *int64
}

// RetrieveRequest synchronizes a payment's status with its connector.
type RetrieveRequest struct {
	ResourceID   PaymentIDType
	MerchantID   *string
	ForceSync    bool
	ClientSecret *string
	Connector    *string
}

// NextAction tells the client how to continue a payment that needs customer action.
type NextAction struct {
	Type        string `json:"type"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// PaymentsResponse is the merchant-facing projection of a pipeline run.
type PaymentsResponse struct {
	PaymentID              string                     `json:"payment_id"`
	MerchantID             string                     `json:"merchant_id"`
	Status                 domain.IntentStatus        `json:"status"`
	Amount                 int64                      `json:"amount"`
	Currency               string                     `json:"currency"`
	AmountCaptured         *int64                     `json:"amount_captured,omitempty"`
	ClientSecret           *string                    `json:"client_secret,omitempty"`
	CustomerID             *string                    `json:"customer_id,omitempty"`
	Description            *string                    `json:"description,omitempty"`
	ReturnURL              *string                    `json:"return_url,omitempty"`
	AttemptID              string                     `json:"attempt_id"`
	AttemptStatus          domain.AttemptStatus       `json:"attempt_status"`
	Connector              *string                    `json:"connector,omitempty"`
	ConnectorTransactionID *string                    `json:"connector_transaction_id,omitempty"`
	PaymentMethod          *domain.PaymentMethodType  `json:"payment_method,omitempty"`
	AuthenticationType     *domain.AuthenticationType `json:"authentication_type,omitempty"`
	CaptureMethod          domain.CaptureMethod       `json:"capture_method"`
	CancellationReason     *string                    `json:"cancellation_reason,omitempty"`
	ErrorCode              *string                    `json:"error_code,omitempty"`
	ErrorMessage           *string                    `json:"error_message,omitempty"`
	NextAction             *NextAction                `json:"next_action,omitempty"`
	CreatedAt              time.Time                  `json:"created_at"`
}
