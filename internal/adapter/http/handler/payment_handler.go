package handler

import (
	"payment-router/internal/adapter/http/dto"
	"payment-router/internal/adapter/http/middleware"
	"payment-router/internal/core/ports"
	"payment-router/pkg/apperror"
	"payment-router/pkg/response"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes the payment operations over HTTP.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// Create handles POST /api/v1/payments.
func (h *PaymentHandler) Create(c *gin.Context) {
	merchant, ok := middleware.Merchant(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.PaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(dto.BindingMessage(err)))
		return
	}

	result, err := h.paymentSvc.Create(c.Request.Context(), merchant, req.ToPorts(""))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Confirm handles POST /api/v1/payments/:payment_id/confirm.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	merchant, ok := middleware.Merchant(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.PaymentsRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, apperror.Validation(dto.BindingMessage(err)))
		return
	}

	result, err := h.paymentSvc.Confirm(c.Request.Context(), merchant, req.ToPorts(c.Param("payment_id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Cancel handles POST /api/v1/payments/:payment_id/cancel.
func (h *PaymentHandler) Cancel(c *gin.Context) {
	merchant, ok := middleware.Merchant(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CancelRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, apperror.Validation(dto.BindingMessage(err)))
		return
	}

	result, err := h.paymentSvc.Cancel(c.Request.Context(), merchant, req.ToPorts(c.Param("payment_id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Capture handles POST /api/v1/payments/:payment_id/capture.
func (h *PaymentHandler) Capture(c *gin.Context) {
	merchant, ok := middleware.Merchant(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CaptureRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, apperror.Validation(dto.BindingMessage(err)))
		return
	}

	result, err := h.paymentSvc.Capture(c.Request.Context(), merchant, req.ToPorts(c.Param("payment_id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Retrieve handles GET /api/v1/payments/:payment_id. With force_sync=true
// the status is refreshed from the connector first.
func (h *PaymentHandler) Retrieve(c *gin.Context) {
	merchant, ok := middleware.Merchant(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var q dto.RetrieveQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(dto.BindingMessage(err)))
		return
	}

	result, err := h.paymentSvc.Sync(c.Request.Context(), merchant, q.ToPorts(c.Param("payment_id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// bindOptionalJSON binds a JSON body when one was sent.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(obj)
}
