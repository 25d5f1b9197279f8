package dto

import (
	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"
)

// --- Payment DTOs ---

// CardRequest carries raw card data. It is forwarded to the connector only.
type CardRequest struct {
	Number     string  `json:"card_number" binding:"required,numeric,min=12,max=19"`
	ExpMonth   string  `json:"card_exp_month" binding:"required,numeric,len=2"`
	ExpYear    string  `json:"card_exp_year" binding:"required,numeric,len=4"`
	CVC        string  `json:"card_cvc" binding:"required,numeric,min=3,max=4"`
	HolderName *string `json:"card_holder_name,omitempty" binding:"omitempty,max=255"`
}

type PaymentMethodDataRequest struct {
	Card  *CardRequest `json:"card,omitempty"`
	Token *string      `json:"token,omitempty" binding:"omitempty,safe_id,max=255"`
}

type AddressRequest struct {
	Line1     *string `json:"line1,omitempty" binding:"omitempty,max=255"`
	Line2     *string `json:"line2,omitempty" binding:"omitempty,max=255"`
	City      *string `json:"city,omitempty" binding:"omitempty,max=128"`
	State     *string `json:"state,omitempty" binding:"omitempty,max=128"`
	Zip       *string `json:"zip,omitempty" binding:"omitempty,max=32"`
	Country   *string `json:"country,omitempty" binding:"omitempty,iso3166_1_alpha2"`
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,max=128"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=128"`
}

type MandateDataRequest struct {
	Type               string `json:"mandate_type" binding:"required,oneof=single_use multi_use"`
	CustomerAcceptance bool   `json:"customer_acceptance"`
}

// PaymentsRequest is the body of create and confirm.
type PaymentsRequest struct {
	PaymentID          *string                   `json:"payment_id,omitempty" binding:"omitempty,safe_id,max=64"`
	MerchantID         *string                   `json:"merchant_id,omitempty" binding:"omitempty,safe_id,max=64"`
	Amount             *int64                    `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Currency           *string                   `json:"currency,omitempty" binding:"omitempty,iso4217"`
	Confirm            *bool                     `json:"confirm,omitempty"`
	Connector          *string                   `json:"connector,omitempty" binding:"omitempty,safe_id,max=64"`
	ClientSecret       *string                   `json:"client_secret,omitempty" binding:"omitempty,max=128"`
	CustomerID         *string                   `json:"customer_id,omitempty" binding:"omitempty,safe_id,max=64"`
	Name               *string                   `json:"name,omitempty" binding:"omitempty,max=255"`
	Email              *string                   `json:"email,omitempty" binding:"omitempty,email,max=255"`
	Phone              *string                   `json:"phone,omitempty" binding:"omitempty,e164"`
	Description        *string                   `json:"description,omitempty" binding:"omitempty,max=255"`
	ReturnURL          *string                   `json:"return_url,omitempty" binding:"omitempty,safe_url,max=2048"`
	PaymentMethod      *string                   `json:"payment_method,omitempty" binding:"omitempty,oneof=card wallet bank_transfer bank_redirect pay_later"`
	PaymentMethodData  *PaymentMethodDataRequest `json:"payment_method_data,omitempty"`
	AuthenticationType *string                   `json:"authentication_type,omitempty" binding:"omitempty,oneof=three_ds no_three_ds"`
	CaptureMethod      *string                   `json:"capture_method,omitempty" binding:"omitempty,oneof=automatic manual"`
	Shipping           *AddressRequest           `json:"shipping,omitempty"`
	Billing            *AddressRequest           `json:"billing,omitempty"`
	MandateID          *string                   `json:"mandate_id,omitempty" binding:"omitempty,safe_id,max=64"`
	MandateData        *MandateDataRequest       `json:"mandate_data,omitempty"`
}

// ToPorts converts the body into the service request. pathID, when set,
// overrides any payment_id in the body.
func (r PaymentsRequest) ToPorts(pathID string) ports.PaymentsRequest {
	out := ports.PaymentsRequest{
		PaymentID:    r.PaymentID,
		MerchantID:   r.MerchantID,
		Amount:       r.Amount,
		Currency:     r.Currency,
		Confirm:      r.Confirm,
		Connector:    r.Connector,
		ClientSecret: r.ClientSecret,
		CustomerID:   r.CustomerID,
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Description:  r.Description,
		ReturnURL:    r.ReturnURL,
		Shipping:     r.Shipping.toPorts(),
		Billing:      r.Billing.toPorts(),
		MandateID:    r.MandateID,
	}
	if pathID != "" {
		out.PaymentID = &pathID
	}
	if r.PaymentMethod != nil {
		pm := domain.PaymentMethodType(*r.PaymentMethod)
		out.PaymentMethod = &pm
	}
	if r.AuthenticationType != nil {
		at := domain.AuthenticationType(*r.AuthenticationType)
		out.AuthenticationType = &at
	}
	if r.CaptureMethod != nil {
		cm := domain.CaptureMethod(*r.CaptureMethod)
		out.CaptureMethod = &cm
	}
	if pmd := r.PaymentMethodData; pmd != nil {
		out.PaymentMethodData = &ports.PaymentMethodData{Token: pmd.Token}
		if card := pmd.Card; card != nil {
			out.PaymentMethodData.Card = &ports.Card{
				Number:     card.Number,
				ExpMonth:   card.ExpMonth,
				ExpYear:    card.ExpYear,
				CVC:        card.CVC,
				HolderName: card.HolderName,
			}
		}
	}
	if md := r.MandateData; md != nil {
		out.MandateData = &ports.MandateData{
			Type:               domain.MandateType(md.Type),
			CustomerAcceptance: md.CustomerAcceptance,
		}
	}
	return out
}

func (a *AddressRequest) toPorts() *ports.AddressDetails {
	if a == nil {
		return nil
	}
	return &ports.AddressDetails{
		Line1:     a.Line1,
		Line2:     a.Line2,
		City:      a.City,
		State:     a.State,
		Zip:       a.Zip,
		Country:   a.Country,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}

type CancelRequest struct {
	MerchantID         *string `json:"merchant_id,omitempty" binding:"omitempty,safe_id,max=64"`
	CancellationReason *string `json:"cancellation_reason,omitempty" binding:"omitempty,max=255"`
}

func (r CancelRequest) ToPorts(paymentID string) ports.CancelRequest {
	return ports.CancelRequest{
		PaymentID:          paymentID,
		MerchantID:         r.MerchantID,
		CancellationReason: r.CancellationReason,
	}
}

type CaptureRequest struct {
	MerchantID      *string `json:"merchant_id,omitempty" binding:"omitempty,safe_id,max=64"`
	AmountToCapture *int64  `json:"amount_to_capture,omitempty" binding:"omitempty,gt=0"`
}

func (r CaptureRequest) ToPorts(paymentID string) ports.CaptureRequest {
	return ports.CaptureRequest{
		PaymentID:       paymentID,
		MerchantID:      r.MerchantID,
		AmountToCapture: r.AmountToCapture,
	}
}

// RetrieveQuery holds the query string of GET /payments/:payment_id.
type RetrieveQuery struct {
	ForceSync    bool    `form:"force_sync"`
	ClientSecret *string `form:"client_secret" binding:"omitempty,max=128"`
	Connector    *string `form:"connector" binding:"omitempty,safe_id,max=64"`
	IDType       string  `form:"id_type" binding:"omitempty,oneof=payment_id connector_transaction_id"`
}

func (q RetrieveQuery) ToPorts(id string) ports.RetrieveRequest {
	resource := ports.IntentID(id)
	if q.IDType == "connector_transaction_id" {
		resource = ports.ConnectorTransactionID(id)
	}
	return ports.RetrieveRequest{
		ResourceID:   resource,
		ForceSync:    q.ForceSync,
		ClientSecret: q.ClientSecret,
		Connector:    q.Connector,
	}
}
