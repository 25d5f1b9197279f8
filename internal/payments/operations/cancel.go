package operations

import (
	"context"

	"payment-router/internal/connector"
	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"
	"payment-router/internal/payments"
	"payment-router/pkg/apperror"
)

// Cancel voids a payment that reached its connector.
type Cancel struct{}

var _ payments.Operation[ports.CancelRequest, connector.VoidData] = Cancel{}

func (Cancel) Name() string { return "cancel" }

func (Cancel) ValidateRequest(req ports.CancelRequest, merchant *domain.MerchantAccount) (*payments.ValidateResult, error) {
	merchantID, err := payments.ValidateMerchantID(merchant, req.MerchantID)
	if err != nil {
		return nil, err
	}
	if req.PaymentID == "" {
		return nil, apperror.ErrMissingRequiredField("payment_id")
	}
	return &payments.ValidateResult{MerchantID: merchantID, PaymentID: ports.IntentID(req.PaymentID)}, nil
}

func (Cancel) GetTracker(ctx context.Context, store payments.Store, paymentID ports.PaymentIDType, merchantID string, _ *string, req ports.CancelRequest, _ *domain.MandateType) (*payments.PaymentData, *domain.CustomerDetails, error) {
	intent, err := store.Intents.FindByPaymentIDMerchantID(ctx, paymentID.Value, merchantID)
	if err != nil {
		return nil, nil, payments.StorageError(err)
	}
	if intent.Status.IsTerminal() {
		return nil, nil, apperror.ErrPaymentUnexpectedState(string(intent.Status), "cancelled",
			string(domain.IntentStatusRequiresConfirmation),
			string(domain.IntentStatusRequiresCustomerAction),
			string(domain.IntentStatusRequiresCapture),
			string(domain.IntentStatusProcessing))
	}

	attempt, err := store.Attempts.FindByPaymentIDMerchantID(ctx, intent.PaymentID, merchantID)
	if err != nil {
		return nil, nil, payments.StorageError(err)
	}
	if attempt.ConnectorTransactionID == nil {
		return nil, nil, apperror.ErrPaymentUnexpectedState(string(intent.Status), "cancelled before reaching a connector")
	}

	connResp, err := payments.LoadConnectorResponse(ctx, store, attempt)
	if err != nil {
		return nil, nil, err
	}

	return &payments.PaymentData{
		Flow:               domain.FlowVoid,
		Intent:             intent,
		Attempt:            attempt,
		ConnectorResponse:  connResp,
		Amount:             attempt.Amount,
		Currency:           attempt.Currency,
		CancellationReason: req.CancellationReason,
	}, nil, nil
}

func (Cancel) ConstructFlowSpecificData(data *payments.PaymentData, connectorName string, _ *domain.MerchantAccount) (connector.RouterData[connector.VoidData], error) {
	req := connector.VoidData{ConnectorTransactionID: *data.Attempt.ConnectorTransactionID}
	if data.CancellationReason != nil {
		req.CancellationReason = *data.CancellationReason
	}
	return payments.NewRouterData(data, connectorName, req), nil
}

func (Cancel) UpdateTracker(ctx context.Context, store payments.Store, _ ports.PaymentIDType, data *payments.PaymentData, _ *domain.CustomerDetails) (*payments.PaymentData, error) {
	if data.Outcome.Kind == payments.OutcomeSkipped {
		return data, nil
	}
	next, err := payments.Transition(data)
	if err != nil {
		return nil, err
	}

	upd := domain.AttemptVoidUpdate{Status: next.Attempt, CancellationReason: data.CancellationReason}
	if next.Intent == domain.IntentStatusFailed {
		upd.FailureDetail = data.Outcome.FailureDetail()
	}
	attempt, err := store.Attempts.Update(ctx, data.Attempt, upd)
	if err != nil {
		return nil, payments.StorageError(err)
	}
	data.Attempt = attempt

	intent, err := store.Intents.Update(ctx, data.Intent, domain.IntentStatusUpdate{Status: next.Intent})
	if err != nil {
		return nil, payments.StorageError(err)
	}
	data.Intent = intent
	return data, nil
}
