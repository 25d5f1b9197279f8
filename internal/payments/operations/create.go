package operations

import (
	"context"
	"errors"
	"time"

	"payment-router/internal/connector"
	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"
	"payment-router/internal/payments"
	"payment-router/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Create registers a new payment. With confirm=true it also authorizes it in
// the same run.
type Create struct{}

var _ payments.Operation[ports.PaymentsRequest, connector.AuthorizeData] = Create{}

func (Create) Name() string { return "create" }

func (Create) ValidateRequest(req ports.PaymentsRequest, merchant *domain.MerchantAccount) (*payments.ValidateResult, error) {
	merchantID, err := payments.ValidateMerchantID(merchant, req.MerchantID)
	if err != nil {
		return nil, err
	}
	switch {
	case req.Amount == nil:
		return nil, apperror.ErrMissingRequiredField("amount")
	case *req.Amount <= 0:
		return nil, apperror.ErrInvalidDataFormat("amount", "positive integer in minor units")
	case req.Currency == nil:
		return nil, apperror.ErrMissingRequiredField("currency")
	case validate.Var(*req.Currency, "iso4217") != nil:
		return nil, apperror.ErrInvalidDataFormat("currency", "ISO 4217 alphabetic code")
	}

	mandateType, err := payments.ValidateMandate(req)
	if err != nil {
		return nil, err
	}
	if req.Confirm != nil && *req.Confirm {
		if err := requirePaymentMethod(req.PaymentMethodData != nil, req.MandateID); err != nil {
			return nil, err
		}
	}
	return &payments.ValidateResult{
		MerchantID:  merchantID,
		PaymentID:   payments.PaymentIDOrNew(req.PaymentID),
		MandateType: mandateType,
	}, nil
}

func (Create) GetTracker(ctx context.Context, store payments.Store, paymentID ports.PaymentIDType, merchantID string, connectorHint *string, req ports.PaymentsRequest, mandateType *domain.MandateType) (*payments.PaymentData, *domain.CustomerDetails, error) {
	if paymentID.Kind != ports.PaymentIDIntent {
		return nil, nil, apperror.ErrInvalidDataFormat("payment_id", "payment intent id")
	}

	shipping, err := payments.SaveAddress(ctx, store.Addresses, req.Shipping, nil, merchantID, req.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	billing, err := payments.SaveAddress(ctx, store.Addresses, req.Billing, nil, merchantID, req.CustomerID)
	if err != nil {
		return nil, nil, err
	}

	secret, err := payments.NewClientSecret(paymentID.Value)
	if err != nil {
		return nil, nil, apperror.InternalError(err)
	}
	now := time.Now().UTC()
	intent, err := store.Intents.Insert(ctx, &domain.PaymentIntent{
		PaymentID:         paymentID.Value,
		MerchantID:        merchantID,
		Status:            domain.IntentStatusRequiresConfirmation,
		Amount:            *req.Amount,
		Currency:          *req.Currency,
		CustomerID:        req.CustomerID,
		Description:       req.Description,
		ReturnURL:         req.ReturnURL,
		ShippingAddressID: payments.AddressID(shipping),
		BillingAddressID:  payments.AddressID(billing),
		ClientSecret:      &secret,
		CreatedAt:         now,
		ModifiedAt:        now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, nil, apperror.ErrDuplicatePayment()
		}
		return nil, nil, apperror.ErrDatabaseError(err)
	}

	attempt := &domain.PaymentAttempt{
		AttemptID:     domain.NewID("att"),
		PaymentID:     intent.PaymentID,
		MerchantID:    merchantID,
		TxnID:         domain.NewID("txn"),
		Status:        domain.AttemptStatusStarted,
		Amount:        intent.Amount,
		Currency:      intent.Currency,
		CaptureMethod: domain.CaptureMethodAutomatic,
		MandateID:     req.MandateID,
		CreatedAt:     now,
		ModifiedAt:    now,
	}
	hint := req.Connector
	if connectorHint != nil {
		hint = connectorHint
	}
	applyAttemptFields(attempt, req.PaymentMethod, req.AuthenticationType, req.CaptureMethod, hint)
	attempt, err = store.Attempts.Insert(ctx, attempt)
	if err != nil {
		return nil, nil, apperror.ErrDatabaseError(err)
	}

	connResp, err := store.ConnectorResponses.Insert(ctx, &domain.ConnectorResponse{
		PaymentID:  attempt.PaymentID,
		MerchantID: merchantID,
		TxnID:      attempt.TxnID,
		CreatedAt:  now,
		ModifiedAt: now,
	})
	if err != nil {
		return nil, nil, apperror.ErrDatabaseError(err)
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
		MandateID:         req.MandateID,
		Confirm:           req.Confirm,
		PaymentMethodData: req.PaymentMethodData,
	}
	if mandateType != nil {
		data.SetupMandate = req.MandateData
	}
	return data, payments.CustomerFromRequest(req), nil
}

// ShouldCallConnector authorizes only when the merchant asked to confirm.
func (Create) ShouldCallConnector(data *payments.PaymentData) bool {
	return data.Confirm != nil && *data.Confirm
}

func (Create) ConstructFlowSpecificData(data *payments.PaymentData, connectorName string, _ *domain.MerchantAccount) (connector.RouterData[connector.AuthorizeData], error) {
	return payments.NewRouterData(data, connectorName, payments.AuthorizeRequest(data)), nil
}

func (Create) UpdateTracker(ctx context.Context, store payments.Store, _ ports.PaymentIDType, data *payments.PaymentData, customer *domain.CustomerDetails) (*payments.PaymentData, error) {
	return updateAuthorize(ctx, store, data, customer)
}
