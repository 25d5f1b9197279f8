// Package operations holds the payment lifecycle operations run by the
// payments core: create, confirm, cancel, capture and sync.
package operations

import (
	"context"

	"payment-router/internal/core/domain"
	"payment-router/internal/payments"
	"payment-router/pkg/apperror"
)

// updateAuthorize persists the outcome of an authorize call. Create and
// Confirm share it.
func updateAuthorize(ctx context.Context, store payments.Store, data *payments.PaymentData, customer *domain.CustomerDetails) (*payments.PaymentData, error) {
	if data.Outcome.Kind == payments.OutcomeSkipped {
		return data, nil
	}

	next, err := payments.Transition(data)
	if err != nil {
		return nil, err
	}

	customerID := data.Intent.CustomerID
	if customer != nil && customer.CustomerID != nil {
		customerID = customer.CustomerID
	}
	if err := payments.SaveAddresses(ctx, store, data, customerID); err != nil {
		return nil, err
	}

	upd := domain.AttemptConfirmUpdate{
		Status:                 next.Attempt,
		PaymentMethod:          data.Attempt.PaymentMethod,
		AuthenticationType:     data.Attempt.AuthenticationType,
		Connector:              data.Attempt.Connector,
		ConnectorTransactionID: data.Outcome.ConnectorTransactionID(),
	}
	if next.Intent == domain.IntentStatusFailed {
		upd.FailureDetail = data.Outcome.FailureDetail()
	}
	attempt, err := store.Attempts.Update(ctx, data.Attempt, upd)
	if err != nil {
		return nil, payments.StorageError(err)
	}
	data.Attempt = attempt

	intent, err := store.Intents.Update(ctx, data.Intent, domain.IntentMerchantStatusUpdate{
		Status:            next.Intent,
		ShippingAddressID: payments.AddressID(data.Shipping),
		BillingAddressID:  payments.AddressID(data.Billing),
	})
	if err != nil {
		return nil, payments.StorageError(err)
	}
	data.Intent = intent

	if err := payments.SaveConnectorResponse(ctx, store, data); err != nil {
		return nil, err
	}
	return data, nil
}

// requirePaymentMethod checks that an authorize call has something to charge.
func requirePaymentMethod(hasData bool, mandateID *string) error {
	if hasData || mandateID != nil {
		return nil
	}
	return apperror.ErrMissingRequiredField("payment_method_data")
}

// applyAttemptFields sets the request-derived attempt fields. A request value
// overrides the stored one only when supplied.
func applyAttemptFields(attempt *domain.PaymentAttempt, pm *domain.PaymentMethodType, auth *domain.AuthenticationType, capture *domain.CaptureMethod, connectorHint *string) {
	if pm != nil {
		attempt.PaymentMethod = pm
	}
	if auth != nil {
		attempt.AuthenticationType = auth
	}
	if capture != nil {
		attempt.CaptureMethod = *capture
	}
	if connectorHint != nil && *connectorHint != "" {
		attempt.Connector = connectorHint
	}
}
