package connector

import (
	"fmt"

	"payment-router/internal/core/domain"
	"payment-router/pkg/apperror"
)

// ErrorKind classifies how a connector call failed.
type ErrorKind string

const (
	KindTimeout           ErrorKind = "timeout"
	KindTransport         ErrorKind = "transport"
	KindRemoteStatus      ErrorKind = "remote_status"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindRequestEncoding   ErrorKind = "request_encoding"
)

// Error is the normalized failure of one connector call.
type Error struct {
	Kind       ErrorKind
	Connector  string
	Flow       domain.Flow
	StatusCode int    // remote HTTP status, zero when no response arrived
	Code       string // connector-supplied error code
	Message    string // connector-supplied error message
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("connector %s %s: %s", e.Connector, e.Flow, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Code != "" || e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.reason())
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode is the code recorded on the attempt: the connector's code when
// supplied, otherwise the failure kind.
func (e *Error) ErrorCode() string {
	if e.Code != "" {
		return e.Code
	}
	return string(e.Kind)
}

// ErrorMessage is the message recorded on the attempt.
func (e *Error) ErrorMessage() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindTimeout:
		return "connector did not respond in time"
	case KindTransport:
		return "connector could not be reached"
	case KindMalformedResponse:
		return "connector returned an unreadable response"
	case KindRequestEncoding:
		return "request could not be encoded for connector"
	default:
		return "connector rejected the request"
	}
}

func (e *Error) reason() string {
	switch {
	case e.Code != "" && e.Message != "":
		return e.Code + ": " + e.Message
	case e.Code != "":
		return e.Code
	default:
		return e.Message
	}
}

// PaymentFailed converts the error to the client-facing "payment failed"
// error. Only connector-supplied code and message become the reason.
func (e *Error) PaymentFailed() *apperror.AppError {
	return apperror.ErrPaymentFailed(e.reason(), e)
}
