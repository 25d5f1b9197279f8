package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError independently of its code.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConnector    Kind = "connector"
	KindPersistence  Kind = "persistence"
	KindUnauthorized Kind = "unauthorized"
	KindConflict     Kind = "conflict"
	KindRateLimited  Kind = "rate_limited"
	KindInternal     Kind = "internal"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	Reason     string `json:"reason,omitempty"` // connector supplied detail, safe to expose
	HTTPStatus int    `json:"-"`
	Kind       Kind   `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int, kind Kind) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Kind:       kind,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, kind Kind, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Kind:       kind,
		Err:        err,
	}
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ---- Request Validation (VAL) ----

func ErrInvalidDataFormat(field, expected string) *AppError {
	return New("VAL_001", fmt.Sprintf("Invalid data format for %s, expected %s", field, expected), http.StatusBadRequest, KindValidation)
}

func ErrMissingRequiredField(field string) *AppError {
	return New("VAL_002", fmt.Sprintf("Missing required field: %s", field), http.StatusBadRequest, KindValidation)
}

func ErrDuplicatePayment() *AppError {
	return New("VAL_003", "Payment with this id already exists", http.StatusConflict, KindConflict)
}

// Validation returns a generic validation error with a custom message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest, KindValidation)
}

// ---- Payment Lifecycle (PAY) ----

func ErrPaymentNotFound() *AppError {
	return New("PAY_001", "Payment does not exist", http.StatusNotFound, KindNotFound)
}

func ErrClientSecretInvalid() *AppError {
	return New("PAY_002", "Client secret does not match the payment", http.StatusBadRequest, KindValidation)
}

func ErrPaymentUnexpectedState(current, action string, allowed ...string) *AppError {
	msg := fmt.Sprintf("Payment in status %s cannot be %s", current, action)
	if len(allowed) > 0 {
		msg = fmt.Sprintf("%s, expected one of %v", msg, allowed)
	}
	return New("PAY_003", msg, http.StatusBadRequest, KindValidation)
}

// ErrPaymentFailed reports a connector side failure. reason carries the
// connector's own code/message when it supplied one.
func ErrPaymentFailed(reason string, err error) *AppError {
	e := Wrap("PAY_004", "Payment failed while processing with connector", http.StatusUnprocessableEntity, KindConnector, err)
	e.Reason = reason
	return e
}

func ErrConnectorNotConfigured(connector string) *AppError {
	return New("PAY_005", fmt.Sprintf("Connector %s is not configured for this merchant", connector), http.StatusBadRequest, KindValidation)
}

func ErrFlowNotSupported(connector, flow string) *AppError {
	return New("PAY_005", fmt.Sprintf("Connector %s does not support %s", connector, flow), http.StatusBadRequest, KindValidation)
}

func ErrPaymentLocked() *AppError {
	return New("PAY_006", "Another operation is in progress for this payment", http.StatusConflict, KindConflict)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized, KindUnauthorized)
}

func ErrMerchantSuspended() *AppError {
	return New("AUTH_002", "Merchant account is suspended", http.StatusForbidden, KindUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests, KindRateLimited)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, KindPersistence, err)
}

func ErrLockUnavailable(err error) *AppError {
	return Wrap("SYS_002", "Lock service unavailable", http.StatusServiceUnavailable, KindInternal, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, KindInternal, err)
}

// InternalError wraps an internal error as a SYS_000 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_000", "Internal server error", http.StatusInternalServerError, KindInternal, err)
}

// Envelope is the client-facing projection of an error.
type Envelope struct {
	HTTPStatus int
	Code       string
	Message    string
	Reason     string
}

// ToEnvelope maps any error to its client-facing projection. Wrapped
// internal errors never reach the envelope.
func ToEnvelope(err error) Envelope {
	if appErr, ok := As(err); ok {
		return Envelope{
			HTTPStatus: appErr.HTTPStatus,
			Code:       appErr.Code,
			Message:    appErr.Message,
			Reason:     appErr.Reason,
		}
	}
	return Envelope{
		HTTPStatus: http.StatusInternalServerError,
		Code:       "SYS_000",
		Message:    "Internal server error",
	}
}
