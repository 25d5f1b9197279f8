package domain

import "time"

// PaymentStatusEvent is emitted after UpdateTracker changed a payment's status.
type PaymentStatusEvent struct {
	PaymentID      string        `json:"payment_id"`
	MerchantID     string        `json:"merchant_id"`
	AttemptID      string        `json:"attempt_id"`
	Flow           Flow          `json:"flow"`
	Connector      string        `json:"connector,omitempty"`
	PreviousStatus IntentStatus  `json:"previous_status"`
	IntentStatus   IntentStatus  `json:"intent_status"`
	AttemptStatus  AttemptStatus `json:"attempt_status"`
	Amount         int64         `json:"amount"`
	Currency       string        `json:"currency"`
	OccurredAt     time.Time     `json:"occurred_at"`
}
