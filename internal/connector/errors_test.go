package connector

import (
	"errors"
	"testing"

	"payment-router/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := &Error{
		Kind:       KindRemoteStatus,
		Connector:  "stripe",
		Flow:       domain.FlowAuthorize,
		StatusCode: 402,
		Code:       "card_declined",
		Message:    "Your card was declined.",
	}
	assert.Equal(t, "connector stripe authorize: remote_status (status 402): card_declined: Your card was declined.", err.Error())
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("dial tcp: connection refused")
	err := &Error{Kind: KindTransport, Connector: "checkout", Flow: domain.FlowVoid, Err: inner}

	assert.True(t, errors.Is(err, inner))
	assert.Equal(t, "transport", err.ErrorCode())
	assert.Equal(t, "connector could not be reached", err.ErrorMessage())
}

func TestError_PaymentFailedHidesTransportDetail(t *testing.T) {
	err := &Error{Kind: KindTimeout, Connector: "checkout", Flow: domain.FlowVoid, Err: errors.New("10.1.2.3:443 i/o timeout")}

	appErr := err.PaymentFailed()
	assert.Equal(t, "PAY_004", appErr.Code)
	assert.Empty(t, appErr.Reason)
	assert.NotContains(t, appErr.Message, "10.1.2.3")
	assert.True(t, errors.Is(appErr, err))
}

func TestCallAction_String(t *testing.T) {
	assert.Equal(t, "trigger", Trigger.String())
	assert.Equal(t, "skip", Skip.String())
}
