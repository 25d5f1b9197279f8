package operations

import (
	"context"

	"payment-router/internal/connector"
	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"
	"payment-router/internal/payments"
	"payment-router/pkg/apperror"
)

// Sync refreshes a payment's status from its connector.
type Sync struct{}

var _ payments.Operation[ports.RetrieveRequest, connector.SyncData] = Sync{}

func (Sync) Name() string { return "sync" }

func (Sync) ValidateRequest(req ports.RetrieveRequest, merchant *domain.MerchantAccount) (*payments.ValidateResult, error) {
	merchantID, err := payments.ValidateMerchantID(merchant, req.MerchantID)
	if err != nil {
		return nil, err
	}
	if req.ResourceID.Value == "" {
		return nil, apperror.ErrMissingRequiredField("payment_id")
	}
	return &payments.ValidateResult{MerchantID: merchantID, PaymentID: req.ResourceID}, nil
}

func (Sync) GetTracker(ctx context.Context, store payments.Store, paymentID ports.PaymentIDType, merchantID string, _ *string, req ports.RetrieveRequest, _ *domain.MandateType) (*payments.PaymentData, *domain.CustomerDetails, error) {
	var (
		intent  *domain.PaymentIntent
		attempt *domain.PaymentAttempt
		err     error
	)
	switch paymentID.Kind {
	case ports.PaymentIDConnectorTransaction:
		// The intent is only reachable through the attempt here.
		attempt, err = store.Attempts.FindByConnectorTransactionID(ctx, merchantID, paymentID.Value)
		if err != nil {
			return nil, nil, payments.StorageError(err)
		}
		intent, err = store.Intents.FindByPaymentIDMerchantID(ctx, attempt.PaymentID, merchantID)
		if err != nil {
			return nil, nil, payments.StorageError(err)
		}
		if err := payments.VerifyClientSecret(intent, req.ClientSecret); err != nil {
			return nil, nil, err
		}
	default:
		intent, err = store.Intents.FindByPaymentIDMerchantID(ctx, paymentID.Value, merchantID)
		if err != nil {
			return nil, nil, payments.StorageError(err)
		}
		if err := payments.VerifyClientSecret(intent, req.ClientSecret); err != nil {
			return nil, nil, err
		}
		attempt, err = store.Attempts.FindByPaymentIDMerchantID(ctx, intent.PaymentID, merchantID)
		if err != nil {
			return nil, nil, payments.StorageError(err)
		}
	}

	connResp, err := payments.LoadConnectorResponse(ctx, store, attempt)
	if err != nil {
		return nil, nil, err
	}

	return &payments.PaymentData{
		Flow:              domain.FlowPSync,
		Intent:            intent,
		Attempt:           attempt,
		ConnectorResponse: connResp,
		Amount:            attempt.Amount,
		Currency:          attempt.Currency,
		ForceSync:         req.ForceSync,
	}, nil, nil
}

// ShouldCallConnector skips attempts that never reached a connector and
// terminal attempts unless a sync is forced.
func (Sync) ShouldCallConnector(data *payments.PaymentData) bool {
	if data.Attempt.ConnectorTransactionID == nil {
		return false
	}
	return data.ForceSync || !data.Attempt.Status.IsTerminal()
}

func (Sync) ConstructFlowSpecificData(data *payments.PaymentData, connectorName string, _ *domain.MerchantAccount) (connector.RouterData[connector.SyncData], error) {
	req := connector.SyncData{ConnectorTransactionID: *data.Attempt.ConnectorTransactionID}
	if data.ConnectorResponse != nil && data.ConnectorResponse.EncodedData != nil {
		req.EncodedData = *data.ConnectorResponse.EncodedData
	}
	return payments.NewRouterData(data, connectorName, req), nil
}

func (Sync) UpdateTracker(ctx context.Context, store payments.Store, _ ports.PaymentIDType, data *payments.PaymentData, _ *domain.CustomerDetails) (*payments.PaymentData, error) {
	if data.Outcome.Kind == payments.OutcomeSkipped {
		return data, nil
	}
	prior := payments.StatusPair{Intent: data.Intent.Status, Attempt: data.Attempt.Status}
	next, err := payments.Transition(data)
	if err != nil {
		return nil, err
	}

	upd := domain.AttemptSyncUpdate{Status: next.Attempt, ConnectorTransactionID: data.Outcome.ConnectorTransactionID()}
	// an unchanged failed pair keeps the failure it was recorded with
	if next.Intent == domain.IntentStatusFailed && next != prior {
		upd.FailureDetail = data.Outcome.FailureDetail()
	}
	attempt, err := store.Attempts.Update(ctx, data.Attempt, upd)
	if err != nil {
		return nil, payments.StorageError(err)
	}
	data.Attempt = attempt

	var intentUpd domain.IntentUpdate = domain.IntentStatusUpdate{Status: next.Intent}
	if next.Intent == domain.IntentStatusSucceeded && data.Intent.AmountCaptured == nil {
		captured := data.Amount
		if attempt.AmountToCapture != nil {
			captured = *attempt.AmountToCapture
		}
		intentUpd = domain.IntentCaptureUpdate{Status: next.Intent, AmountCaptured: &captured}
	}
	intent, err := store.Intents.Update(ctx, data.Intent, intentUpd)
	if err != nil {
		return nil, payments.StorageError(err)
	}
	data.Intent = intent

	if err := payments.SaveConnectorResponse(ctx, store, data); err != nil {
		return nil, err
	}
	return data, nil
}
