package connector

import (
	"payment-router/internal/core/domain"
)

// RouterData is the flow invocation record built for exactly one connector
// call. It is passed by value; Execute returns a copy with Response set.
type RouterData[Req any] struct {
	Flow               domain.Flow
	Connector          string
	MerchantID         string
	PaymentID          string
	AttemptID          string
	Status             domain.AttemptStatus
	AuthenticationType domain.AuthenticationType
	PaymentMethod      domain.PaymentMethodType
	Amount             int64
	Currency           string
	ReturnURL          string
	Request            Req
	Response           *PaymentsResponseData
}

// Card is raw card data forwarded to a connector.
type Card struct {
	Number     string
	ExpMonth   string
	ExpYear    string
	CVC        string
	HolderName string
}

// AuthorizeData is the request half of the authorize flow.
type AuthorizeData struct {
	Amount        int64
	Currency      string
	Confirm       bool
	CaptureMethod domain.CaptureMethod
	Card          *Card
	Token         string // connector-side payment method reference
	Description   string
	MandateID     string
	SetupMandate  bool
}

// VoidData is the request half of the void flow.
type VoidData struct {
	ConnectorTransactionID string
	CancellationReason     string
}

// CaptureData is the request half of the capture flow.
type CaptureData struct {
	ConnectorTransactionID string
	AmountToCapture        int64
	Currency               string
}

// SyncData is the request half of the psync flow.
type SyncData struct {
	ConnectorTransactionID string
	EncodedData            string
}

// PaymentsResponseData is the uniform response every integration parses into.
type PaymentsResponseData struct {
	ConnectorTransactionID string
	Status                 domain.AttemptStatus // status as reported by the connector
	RedirectURL            *string
	NetworkReference       *string
	// Set when the connector accepted the call but declined the payment.
	ErrorCode    *string
	ErrorMessage *string
}
