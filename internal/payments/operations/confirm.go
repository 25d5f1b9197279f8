package operations

import (
	"context"

	"payment-router/internal/connector"
	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"
	"payment-router/internal/payments"
	"payment-router/pkg/apperror"
)

// Confirm authorizes an existing payment with its connector.
type Confirm struct{}

var _ payments.Operation[ports.PaymentsRequest, connector.AuthorizeData] = Confirm{}

func (Confirm) Name() string { return "confirm" }

func (Confirm) ValidateRequest(req ports.PaymentsRequest, merchant *domain.MerchantAccount) (*payments.ValidateResult, error) {
	merchantID, err := payments.ValidateMerchantID(merchant, req.MerchantID)
	if err != nil {
		return nil, err
	}
	mandateType, err := payments.ValidateMandate(req)
	if err != nil {
		return nil, err
	}
	if err := requirePaymentMethod(req.PaymentMethodData != nil, req.MandateID); err != nil {
		return nil, err
	}
	return &payments.ValidateResult{
		MerchantID:  merchantID,
		PaymentID:   payments.PaymentIDOrNew(req.PaymentID),
		MandateType: mandateType,
	}, nil
}

func (Confirm) GetTracker(ctx context.Context, store payments.Store, paymentID ports.PaymentIDType, merchantID string, connectorHint *string, req ports.PaymentsRequest, mandateType *domain.MandateType) (*payments.PaymentData, *domain.CustomerDetails, error) {
	if paymentID.Kind != ports.PaymentIDIntent {
		return nil, nil, apperror.ErrPaymentNotFound()
	}

	intent, err := store.Intents.FindByPaymentIDMerchantID(ctx, paymentID.Value, merchantID)
	if err != nil {
		return nil, nil, payments.StorageError(err)
	}
	if err := payments.VerifyClientSecret(intent, req.ClientSecret); err != nil {
		return nil, nil, err
	}
	if intent.Status.IsTerminal() {
		return nil, nil, apperror.ErrPaymentUnexpectedState(string(intent.Status), "confirmed")
	}

	attempt, err := store.Attempts.FindByPaymentIDMerchantID(ctx, intent.PaymentID, merchantID)
	if err != nil {
		return nil, nil, payments.StorageError(err)
	}
	hint := req.Connector
	if connectorHint != nil {
		hint = connectorHint
	}
	applyAttemptFields(attempt, req.PaymentMethod, req.AuthenticationType, req.CaptureMethod, hint)

	connResp, err := payments.LoadConnectorResponse(ctx, store, attempt)
	if err != nil {
		return nil, nil, err
	}

	shipping, err := payments.LoadAddress(ctx, store.Addresses, intent.ShippingAddressID)
	if err != nil {
		return nil, nil, err
	}
	billing, err := payments.LoadAddress(ctx, store.Addresses, intent.BillingAddressID)
	if err != nil {
		return nil, nil, err
	}

	data := &payments.PaymentData{
		Flow:              domain.FlowAuthorize,
		Intent:            intent,
		Attempt:           attempt,
		ConnectorResponse: connResp,
		Amount:            attempt.Amount,
		Currency:          attempt.Currency,
		Shipping:          shipping,
		Billing:           billing,
		ShippingDetails:   req.Shipping,
		BillingDetails:    req.Billing,
		MandateID:         req.MandateID,
		PaymentMethodData: req.PaymentMethodData,
	}
	if mandateType != nil {
		data.SetupMandate = req.MandateData
	}
	return data, payments.CustomerFromRequest(req), nil
}

func (Confirm) ConstructFlowSpecificData(data *payments.PaymentData, connectorName string, _ *domain.MerchantAccount) (connector.RouterData[connector.AuthorizeData], error) {
	return payments.NewRouterData(data, connectorName, payments.AuthorizeRequest(data)), nil
}

func (Confirm) UpdateTracker(ctx context.Context, store payments.Store, _ ports.PaymentIDType, data *payments.PaymentData, customer *domain.CustomerDetails) (*payments.PaymentData, error) {
	return updateAuthorize(ctx, store, data, customer)
}
