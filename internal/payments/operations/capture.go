package operations

import (
	"context"

	"payment-router/internal/connector"
	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"
	"payment-router/internal/payments"
	"payment-router/pkg/apperror"
)

// Capture settles funds of a manually captured payment.
type Capture struct{}

var _ payments.Operation[ports.CaptureRequest, connector.CaptureData] = Capture{}

func (Capture) Name() string { return "capture" }

func (Capture) ValidateRequest(req ports.CaptureRequest, merchant *domain.MerchantAccount) (*payments.ValidateResult, error) {
	merchantID, err := payments.ValidateMerchantID(merchant, req.MerchantID)
	if err != nil {
		return nil, err
	}
	if req.PaymentID == "" {
		return nil, apperror.ErrMissingRequiredField("payment_id")
	}
	if req.AmountToCapture != nil && *req.AmountToCapture <= 0 {
		return nil, apperror.ErrInvalidDataFormat("amount_to_capture", "positive integer in minor units")
	}
	return &payments.ValidateResult{MerchantID: merchantID, PaymentID: ports.IntentID(req.PaymentID)}, nil
}

func (Capture) GetTracker(ctx context.Context, store payments.Store, paymentID ports.PaymentIDType, merchantID string, _ *string, req ports.CaptureRequest, _ *domain.MandateType) (*payments.PaymentData, *domain.CustomerDetails, error) {
	intent, err := store.Intents.FindByPaymentIDMerchantID(ctx, paymentID.Value, merchantID)
	if err != nil {
		return nil, nil, payments.StorageError(err)
	}
	if intent.Status != domain.IntentStatusRequiresCapture {
		return nil, nil, apperror.ErrPaymentUnexpectedState(string(intent.Status), "captured", string(domain.IntentStatusRequiresCapture))
	}

	attempt, err := store.Attempts.FindByPaymentIDMerchantID(ctx, intent.PaymentID, merchantID)
	if err != nil {
		return nil, nil, payments.StorageError(err)
	}
	if attempt.Status != domain.AttemptStatusAuthorized || attempt.ConnectorTransactionID == nil {
		return nil, nil, apperror.ErrPaymentUnexpectedState(string(attempt.Status), "captured", string(domain.AttemptStatusAuthorized))
	}

	amount := attempt.Amount
	if req.AmountToCapture != nil {
		if *req.AmountToCapture > attempt.Amount {
			return nil, nil, apperror.Validation("amount_to_capture is greater than the authorized amount")
		}
		amount = *req.AmountToCapture
	}

	connResp, err := payments.LoadConnectorResponse(ctx, store, attempt)
	if err != nil {
		return nil, nil, err
	}

	return &payments.PaymentData{
		Flow:              domain.FlowCapture,
		Intent:            intent,
		Attempt:           attempt,
		ConnectorResponse: connResp,
		Amount:            attempt.Amount,
		Currency:          attempt.Currency,
		AmountToCapture:   &amount,
	}, nil, nil
}

func (Capture) ConstructFlowSpecificData(data *payments.PaymentData, connectorName string, _ *domain.MerchantAccount) (connector.RouterData[connector.CaptureData], error) {
	return payments.NewRouterData(data, connectorName, connector.CaptureData{
		ConnectorTransactionID: *data.Attempt.ConnectorTransactionID,
		AmountToCapture:        *data.AmountToCapture,
		Currency:               data.Currency,
	}), nil
}

func (Capture) UpdateTracker(ctx context.Context, store payments.Store, _ ports.PaymentIDType, data *payments.PaymentData, _ *domain.CustomerDetails) (*payments.PaymentData, error) {
	if data.Outcome.Kind == payments.OutcomeSkipped {
		return data, nil
	}
	next, err := payments.Transition(data)
	if err != nil {
		return nil, err
	}

	upd := domain.AttemptCaptureUpdate{Status: next.Attempt, AmountToCapture: data.AmountToCapture}
	if next.Intent == domain.IntentStatusFailed {
		upd.FailureDetail = data.Outcome.FailureDetail()
	}
	attempt, err := store.Attempts.Update(ctx, data.Attempt, upd)
	if err != nil {
		return nil, payments.StorageError(err)
	}
	data.Attempt = attempt

	intentUpd := domain.IntentCaptureUpdate{Status: next.Intent}
	if next.Intent == domain.IntentStatusSucceeded {
		intentUpd.AmountCaptured = data.AmountToCapture
	}
	intent, err := store.Intents.Update(ctx, data.Intent, intentUpd)
	if err != nil {
		return nil, payments.StorageError(err)
	}
	data.Intent = intent
	return data, nil
}
