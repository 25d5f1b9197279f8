package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payment-router/internal/connector"
	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"
	"payment-router/pkg/apperror"

	"github.com/rs/zerolog"
)

// Observer records pipeline outcomes.
type Observer interface {
	ObserveOperation(operation, outcome string)
}

// Deps holds the collaborators of the payments core.
type Deps struct {
	Store      Store
	Accounts   ports.MerchantConnectorAccountRepository
	Encryption ports.EncryptionService
	Registry   *connector.Registry
	Executor   *connector.Executor
	Events     ports.EventPublisher // optional
	Observer   Observer             // optional
}

// Core runs operations. It holds no per-payment state and is safe for
// concurrent use; single-flight per payment is the caller's concern.
type Core struct {
	store    Store
	accounts ports.MerchantConnectorAccountRepository
	enc      ports.EncryptionService
	registry *connector.Registry
	executor *connector.Executor
	events   ports.EventPublisher
	observer Observer
	log      zerolog.Logger
}

// NewCore creates the payments core.
func NewCore(deps Deps, log zerolog.Logger) *Core {
	return &Core{
		store:    deps.Store,
		accounts: deps.Accounts,
		enc:      deps.Encryption,
		registry: deps.Registry,
		executor: deps.Executor,
		events:   deps.Events,
		observer: deps.Observer,
		log:      log,
	}
}

// Run drives op through ValidateRequest, GetTracker, ConstructFlowSpecificData,
// the dispatcher and UpdateTracker, in that order.
//
// Validation, lookup and persistence errors abort the run and return a nil
// working state. A failed connector call does not: UpdateTracker persists the
// failed pair and Run returns the working state together with the
// payment-failed error. A skipped run returns the persisted intent and attempt.
func Run[Req, FReq any](ctx context.Context, c *Core, op Operation[Req, FReq], req Req, merchant *domain.MerchantAccount, opts RunOptions) (*PaymentData, error) {
	data, err := run(ctx, c, op, req, merchant, opts)

	outcome := "error"
	switch {
	case err == nil:
		outcome = data.Outcome.Kind.String()
	case data != nil:
		outcome = "connector_failure"
	}
	if c.observer != nil {
		c.observer.ObserveOperation(op.Name(), outcome)
	}
	return data, err
}

func run[Req, FReq any](ctx context.Context, c *Core, op Operation[Req, FReq], req Req, merchant *domain.MerchantAccount, opts RunOptions) (*PaymentData, error) {
	log := c.log.With().Str("operation", op.Name()).Str("merchant_id", merchant.MerchantID).Logger()

	vr, err := op.ValidateRequest(req, merchant)
	if err != nil {
		return nil, err
	}

	data, customer, err := op.GetTracker(ctx, c.store, vr.PaymentID, vr.MerchantID, opts.ConnectorHint, req, vr.MandateType)
	if err != nil {
		return nil, err
	}
	data.PreviousStatus = data.Intent.Status
	log = log.With().Str("payment_id", data.Intent.PaymentID).Logger()

	action := opts.CallAction
	if caller, ok := op.(ConnectorCaller); ok && !caller.ShouldCallConnector(data) {
		action = connector.Skip
	}

	var callErr *connector.Error
	if action == connector.Skip {
		data.Outcome = ConnectorOutcome{Kind: OutcomeSkipped}
	} else {
		name, err := c.selectConnector(data, merchant)
		if err != nil {
			return nil, err
		}
		record, err := op.ConstructFlowSpecificData(data, name, merchant)
		if err != nil {
			return nil, err
		}
		_, data, err = DecideFlows(ctx, c, record, name, customer, data, action)
		if err != nil && !errors.As(err, &callErr) {
			return nil, err
		}
	}

	data, err = op.UpdateTracker(ctx, c.store, vr.PaymentID, data, customer)
	if err != nil {
		return nil, err
	}

	if data.Outcome.Kind == OutcomeSkipped {
		if err := c.reload(ctx, data); err != nil {
			return nil, err
		}
	} else {
		c.publish(ctx, log, data)
	}

	if callErr != nil {
		log.Warn().Err(callErr).Str("status", string(data.Intent.Status)).Msg("connector call failed, failure persisted")
		return data, callErr.PaymentFailed()
	}
	log.Info().
		Str("outcome", data.Outcome.Kind.String()).
		Str("status", string(data.Intent.Status)).
		Msg("payment operation completed")
	return data, nil
}

// PaymentIDOf resolves id to the payment it belongs to. A connector
// transaction id is looked up through its attempt.
func (c *Core) PaymentIDOf(ctx context.Context, merchantID string, id ports.PaymentIDType) (string, error) {
	if id.Kind != ports.PaymentIDConnectorTransaction {
		return id.Value, nil
	}
	attempt, err := c.store.Attempts.FindByConnectorTransactionID(ctx, merchantID, id.Value)
	if err != nil {
		return "", StorageError(err)
	}
	return attempt.PaymentID, nil
}

// selectConnector picks the attempt's connector, falling back to the
// merchant's default.
func (c *Core) selectConnector(data *PaymentData, merchant *domain.MerchantAccount) (string, error) {
	if name := data.Attempt.ConnectorName(); name != "" {
		return name, nil
	}
	if merchant.DefaultConnector != nil && *merchant.DefaultConnector != "" {
		data.Attempt.Connector = merchant.DefaultConnector
		return *merchant.DefaultConnector, nil
	}
	return "", apperror.ErrMissingRequiredField("connector")
}

// reload replaces the working intent and attempt with the persisted rows,
// dropping request fields a skipped run never wrote.
func (c *Core) reload(ctx context.Context, data *PaymentData) error {
	intent, err := c.store.Intents.FindByPaymentIDMerchantID(ctx, data.Intent.PaymentID, data.Intent.MerchantID)
	if err != nil {
		return StorageError(err)
	}
	attempt, err := c.store.Attempts.FindByPaymentIDMerchantID(ctx, intent.PaymentID, intent.MerchantID)
	if err != nil {
		return StorageError(err)
	}
	data.Intent, data.Attempt = intent, attempt
	data.ShippingDetails, data.BillingDetails = nil, nil
	return nil
}

// publish emits the status event. Delivery is best effort.
func (c *Core) publish(ctx context.Context, log zerolog.Logger, data *PaymentData) {
	if c.events == nil {
		return
	}
	event := domain.PaymentStatusEvent{
		PaymentID:      data.Intent.PaymentID,
		MerchantID:     data.Intent.MerchantID,
		AttemptID:      data.Attempt.AttemptID,
		Flow:           data.Flow,
		Connector:      data.Attempt.ConnectorName(),
		PreviousStatus: data.PreviousStatus,
		IntentStatus:   data.Intent.Status,
		AttemptStatus:  data.Attempt.Status,
		Amount:         data.Amount,
		Currency:       data.Currency,
		OccurredAt:     time.Now().UTC(),
	}
	if err := c.events.PublishStatusChanged(ctx, event); err != nil {
		log.Warn().Err(err).Msg("failed to publish payment status event")
	}
}

// StorageError maps a repository error to the client-facing error.
func StorageError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.ErrPaymentNotFound()
	}
	return apperror.ErrDatabaseError(err)
}

// wrapStage annotates an unexpected stage error.
func wrapStage(stage string, err error) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	return apperror.InternalError(fmt.Errorf("%s: %w", stage, err))
}
