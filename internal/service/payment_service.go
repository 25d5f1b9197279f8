package service

import (
	"context"
	"fmt"
	"time"

	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"
	"payment-router/internal/payments"
	"payment-router/internal/payments/operations"
	"payment-router/pkg/apperror"

	"github.com/rs/zerolog"
)

const defaultLockTTL = 30 * time.Second

// PaymentServiceImpl implements ports.PaymentService on top of the payments
// core. It serializes operations per payment with a distributed lock.
type PaymentServiceImpl struct {
	core    *payments.Core
	locker  ports.PaymentLocker
	lockTTL time.Duration
	log     zerolog.Logger
}

// NewPaymentService creates a new PaymentServiceImpl. A nil locker disables locking.
func NewPaymentService(core *payments.Core, locker ports.PaymentLocker, lockTTL time.Duration, log zerolog.Logger) *PaymentServiceImpl {
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}
	return &PaymentServiceImpl{
		core:    core,
		locker:  locker,
		lockTTL: lockTTL,
		log:     log,
	}
}

// LockKey is the Redis key guarding one payment.
func LockKey(merchantID, paymentID string) string {
	return fmt.Sprintf("payment_lock:%s:%s", merchantID, paymentID)
}

// Create inserts a payment and, when req.Confirm is set, authorizes it in the same call.
func (s *PaymentServiceImpl) Create(ctx context.Context, merchant *domain.MerchantAccount, req ports.PaymentsRequest) (*ports.PaymentsResponse, error) {
	run := func(ctx context.Context) (*payments.PaymentData, error) {
		return payments.Run(ctx, s.core, operations.Create{}, req, merchant, payments.RunOptions{ConnectorHint: req.Connector})
	}
	// a generated id cannot collide with an in-flight operation
	if req.PaymentID == nil {
		data, err := run(ctx)
		return toResponse(data, true), err
	}
	data, err := s.withLock(ctx, merchant.MerchantID, *req.PaymentID, run)
	return toResponse(data, true), err
}

func (s *PaymentServiceImpl) Confirm(ctx context.Context, merchant *domain.MerchantAccount, req ports.PaymentsRequest) (*ports.PaymentsResponse, error) {
	if req.PaymentID == nil || *req.PaymentID == "" {
		return nil, apperror.ErrMissingRequiredField("payment_id")
	}
	data, err := s.withLock(ctx, merchant.MerchantID, *req.PaymentID, func(ctx context.Context) (*payments.PaymentData, error) {
		return payments.Run(ctx, s.core, operations.Confirm{}, req, merchant, payments.RunOptions{ConnectorHint: req.Connector})
	})
	return toResponse(data, false), err
}

func (s *PaymentServiceImpl) Cancel(ctx context.Context, merchant *domain.MerchantAccount, req ports.CancelRequest) (*ports.PaymentsResponse, error) {
	if req.PaymentID == "" {
		return nil, apperror.ErrMissingRequiredField("payment_id")
	}
	data, err := s.withLock(ctx, merchant.MerchantID, req.PaymentID, func(ctx context.Context) (*payments.PaymentData, error) {
		return payments.Run(ctx, s.core, operations.Cancel{}, req, merchant, payments.RunOptions{})
	})
	return toResponse(data, false), err
}

func (s *PaymentServiceImpl) Capture(ctx context.Context, merchant *domain.MerchantAccount, req ports.CaptureRequest) (*ports.PaymentsResponse, error) {
	if req.PaymentID == "" {
		return nil, apperror.ErrMissingRequiredField("payment_id")
	}
	data, err := s.withLock(ctx, merchant.MerchantID, req.PaymentID, func(ctx context.Context) (*payments.PaymentData, error) {
		return payments.Run(ctx, s.core, operations.Capture{}, req, merchant, payments.RunOptions{})
	})
	return toResponse(data, false), err
}

// Sync refreshes the payment from its connector unless the attempt is
// already terminal and ForceSync is false. A connector transaction id is
// resolved first so the lock is taken on the payment id.
func (s *PaymentServiceImpl) Sync(ctx context.Context, merchant *domain.MerchantAccount, req ports.RetrieveRequest) (*ports.PaymentsResponse, error) {
	if req.ResourceID.Value == "" {
		return nil, apperror.ErrMissingRequiredField("payment_id")
	}
	paymentID, err := s.core.PaymentIDOf(ctx, merchant.MerchantID, req.ResourceID)
	if err != nil {
		return nil, err
	}
	data, err := s.withLock(ctx, merchant.MerchantID, paymentID, func(ctx context.Context) (*payments.PaymentData, error) {
		return payments.Run(ctx, s.core, operations.Sync{}, req, merchant, payments.RunOptions{ConnectorHint: req.Connector})
	})
	return toResponse(data, false), err
}

func (s *PaymentServiceImpl) withLock(ctx context.Context, merchantID, paymentID string, fn func(context.Context) (*payments.PaymentData, error)) (*payments.PaymentData, error) {
	if s.locker == nil {
		return fn(ctx)
	}

	key := LockKey(merchantID, paymentID)
	token, ok, err := s.locker.Acquire(ctx, key, s.lockTTL)
	if err != nil {
		return nil, apperror.ErrLockUnavailable(err)
	}
	if !ok {
		return nil, apperror.ErrPaymentLocked()
	}
	defer func() {
		// the request may be gone by now; the lock still has to go
		if err := s.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to release payment lock")
		}
	}()

	return fn(ctx)
}

// toResponse projects the working state, nil when the run aborted before the
// payment was loaded.
func toResponse(data *payments.PaymentData, withSecret bool) *ports.PaymentsResponse {
	if data == nil || data.Intent == nil || data.Attempt == nil {
		return nil
	}
	intent, attempt := data.Intent, data.Attempt

	resp := &ports.PaymentsResponse{
		PaymentID:              intent.PaymentID,
		MerchantID:             intent.MerchantID,
		Status:                 intent.Status,
		Amount:                 intent.Amount,
		Currency:               intent.Currency,
		AmountCaptured:         intent.AmountCaptured,
		CustomerID:             intent.CustomerID,
		Description:            intent.Description,
		ReturnURL:              intent.ReturnURL,
		AttemptID:              attempt.AttemptID,
		AttemptStatus:          attempt.Status,
		Connector:              attempt.Connector,
		ConnectorTransactionID: attempt.ConnectorTransactionID,
		PaymentMethod:          attempt.PaymentMethod,
		AuthenticationType:     attempt.AuthenticationType,
		CaptureMethod:          attempt.CaptureMethod,
		CancellationReason:     attempt.CancellationReason,
		ErrorCode:              attempt.ErrorCode,
		ErrorMessage:           attempt.ErrorMessage,
		CreatedAt:              intent.CreatedAt,
	}
	if withSecret {
		resp.ClientSecret = intent.ClientSecret
	}
	if intent.Status == domain.IntentStatusRequiresCustomerAction {
		if url := payments.RedirectURL(data.ConnectorResponse); url != "" {
			resp.NextAction = &ports.NextAction{Type: "redirect_to_url", RedirectURL: url}
		}
	}
	return resp
}
