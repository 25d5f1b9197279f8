package domain

import (
	"time"
)

// IntentStatus is the merchant-visible lifecycle state of a payment.
type IntentStatus string

const (
	IntentStatusRequiresPaymentMethod  IntentStatus = "requires_payment_method"
	IntentStatusRequiresConfirmation   IntentStatus = "requires_confirmation"
	IntentStatusRequiresCustomerAction IntentStatus = "requires_customer_action"
	IntentStatusRequiresCapture        IntentStatus = "requires_capture"
	IntentStatusProcessing             IntentStatus = "processing"
	IntentStatusSucceeded              IntentStatus = "succeeded"
	IntentStatusFailed                 IntentStatus = "failed"
	IntentStatusCancelled              IntentStatus = "cancelled"
)

// IsTerminal reports whether no further confirm or cancel is accepted.
func (s IntentStatus) IsTerminal() bool {
	return s == IntentStatusSucceeded || s == IntentStatusFailed || s == IntentStatusCancelled
}

// AttemptStatus is the state of one concrete execution attempt.
type AttemptStatus string

const (
	AttemptStatusStarted             AttemptStatus = "started"
	AttemptStatusPending             AttemptStatus = "pending"
	AttemptStatusPendingVbv          AttemptStatus = "pending_vbv"
	AttemptStatusAuthorizing         AttemptStatus = "authorizing"
	AttemptStatusAuthorized          AttemptStatus = "authorized"
	AttemptStatusAuthorizationFailed AttemptStatus = "authorization_failed"
	AttemptStatusCharged             AttemptStatus = "charged"
	AttemptStatusCaptureFailed       AttemptStatus = "capture_failed"
	AttemptStatusVoided              AttemptStatus = "voided"
	AttemptStatusVoidFailed          AttemptStatus = "void_failed"
	AttemptStatusFailure             AttemptStatus = "failure"
)

// IsTerminal reports whether the connector can no longer change the attempt.
func (s AttemptStatus) IsTerminal() bool {
	switch s {
	case AttemptStatusCharged,
		AttemptStatusVoided,
		AttemptStatusAuthorizationFailed,
		AttemptStatusCaptureFailed,
		AttemptStatusVoidFailed,
		AttemptStatusFailure:
		return true
	}
	return false
}

type PaymentMethodType string

const (
	PaymentMethodCard         PaymentMethodType = "card"
	PaymentMethodWallet       PaymentMethodType = "wallet"
	PaymentMethodBankTransfer PaymentMethodType = "bank_transfer"
	PaymentMethodBankRedirect PaymentMethodType = "bank_redirect"
	PaymentMethodPayLater     PaymentMethodType = "pay_later"
)

type AuthenticationType string

const (
	AuthenticationThreeDS   AuthenticationType = "three_ds"
	AuthenticationNoThreeDS AuthenticationType = "no_three_ds"
)

type CaptureMethod string

const (
	CaptureMethodAutomatic CaptureMethod = "automatic"
	CaptureMethodManual    CaptureMethod = "manual"
)

// MandateType is derived from a request carrying mandate data.
type MandateType string

const (
	MandateTypeSingleUse MandateType = "single_use"
	MandateTypeMultiUse  MandateType = "multi_use"
)

// PaymentIntent is the merchant-level header of a payment.
type PaymentIntent struct {
	PaymentID         string       `json:"payment_id"`
	MerchantID        string       `json:"merchant_id"`
	Status            IntentStatus `json:"status"`
	Amount            int64        `json:"amount"` // minor units
	Currency          string       `json:"currency"`
	AmountCaptured    *int64       `json:"amount_captured,omitempty"`
	CustomerID        *string      `json:"customer_id,omitempty"`
	Description       *string      `json:"description,omitempty"`
	ReturnURL         *string      `json:"return_url,omitempty"`
	ShippingAddressID *string      `json:"shipping_address_id,omitempty"`
	BillingAddressID  *string      `json:"billing_address_id,omitempty"`
	ClientSecret      *string      `json:"-"`
	CreatedAt         time.Time    `json:"created_at"`
	ModifiedAt        time.Time    `json:"modified_at"`
}

// PaymentAttempt is one concrete attempt to execute an intent via a connector.
type PaymentAttempt struct {
	AttemptID              string              `json:"attempt_id"`
	PaymentID              string              `json:"payment_id"`
	MerchantID             string              `json:"merchant_id"`
	TxnID                  string              `json:"txn_id"`
	Status                 AttemptStatus       `json:"status"`
	Amount                 int64               `json:"amount"`
	Currency               string              `json:"currency"`
	Connector              *string             `json:"connector,omitempty"`
	PaymentMethod          *PaymentMethodType  `json:"payment_method,omitempty"`
	AuthenticationType     *AuthenticationType `json:"authentication_type,omitempty"`
	CaptureMethod          CaptureMethod       `json:"capture_method"`
	ConnectorTransactionID *string             `json:"connector_transaction_id,omitempty"`
	AmountToCapture        *int64              `json:"amount_to_capture,omitempty"`
	CancellationReason     *string             `json:"cancellation_reason,omitempty"`
	MandateID              *string             `json:"mandate_id,omitempty"`
	ErrorCode              *string             `json:"error_code,omitempty"`
	ErrorMessage           *string             `json:"error_message,omitempty"`
	CreatedAt              time.Time           `json:"created_at"`
	ModifiedAt             time.Time           `json:"modified_at"`
}

// ConnectorName returns the attempt's connector or "" when none is bound yet.
func (a *PaymentAttempt) ConnectorName() string {
	if a.Connector == nil {
		return ""
	}
	return *a.Connector
}

// AuthType returns the attempt's authentication type, "" when unset.
func (a *PaymentAttempt) AuthType() AuthenticationType {
	if a.AuthenticationType == nil {
		return ""
	}
	return *a.AuthenticationType
}

// ConnectorResponse is keyed by (payment id, merchant id, txn id) and
// overwritten for each new attempt.
type ConnectorResponse struct {
	PaymentID              string    `json:"payment_id"`
	MerchantID             string    `json:"merchant_id"`
	TxnID                  string    `json:"txn_id"`
	ConnectorName          *string   `json:"connector_name,omitempty"`
	ConnectorTransactionID *string   `json:"connector_transaction_id,omitempty"`
	AuthenticationData     []byte    `json:"authentication_data,omitempty"` // JSON, e.g. redirect target
	EncodedData            *string   `json:"encoded_data,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	ModifiedAt             time.Time `json:"modified_at"`
}

// Address is a shipping or billing address referenced by an intent.
type Address struct {
	AddressID  string    `json:"address_id"`
	MerchantID string    `json:"merchant_id"`
	CustomerID *string   `json:"customer_id,omitempty"`
	Line1      *string   `json:"line1,omitempty"`
	Line2      *string   `json:"line2,omitempty"`
	City       *string   `json:"city,omitempty"`
	State      *string   `json:"state,omitempty"`
	Zip        *string   `json:"zip,omitempty"`
	Country    *string   `json:"country,omitempty"`
	FirstName  *string   `json:"first_name,omitempty"`
	LastName   *string   `json:"last_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// CustomerDetails is customer context taken from the request. It is passed
// through the pipeline and never persisted by the core.
type CustomerDetails struct {
	CustomerID *string `json:"customer_id,omitempty"`
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}
