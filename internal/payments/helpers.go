package payments

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"time"

	"payment-router/internal/connector"
	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"
	"payment-router/pkg/apperror"
)

// ValidateMerchantID checks that a merchant id supplied in the request, if
// any, belongs to the authenticated account.
func ValidateMerchantID(merchant *domain.MerchantAccount, requested *string) (string, error) {
	if requested != nil && *requested != merchant.MerchantID {
		return "", apperror.ErrInvalidDataFormat("merchant_id", "merchant_id from merchant account")
	}
	return merchant.MerchantID, nil
}

// ValidateMandate derives the mandate type of a request. A request either
// references an existing mandate or asks for a new one, never both.
func ValidateMandate(req ports.PaymentsRequest) (*domain.MandateType, error) {
	if req.MandateID != nil && req.MandateData != nil {
		return nil, apperror.Validation("mandate_id and mandate_data are mutually exclusive")
	}
	if req.MandateData == nil {
		return nil, nil
	}
	if req.CustomerID == nil || *req.CustomerID == "" {
		return nil, apperror.ErrMissingRequiredField("customer_id")
	}
	if !req.MandateData.CustomerAcceptance {
		return nil, apperror.ErrMissingRequiredField("mandate_data.customer_acceptance")
	}
	mt := req.MandateData.Type
	if mt == "" {
		mt = domain.MandateTypeSingleUse
	}
	return &mt, nil
}

// PaymentIDOrNew returns the given id, or a freshly generated one.
func PaymentIDOrNew(id *string) ports.PaymentIDType {
	if id != nil && *id != "" {
		return ports.IntentID(*id)
	}
	return ports.IntentID(domain.NewPaymentID())
}

// NewClientSecret generates the secret handed to the merchant's client.
func NewClientSecret(paymentID string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return paymentID + "_secret_" + hex.EncodeToString(b), nil
}

// VerifyClientSecret rejects a supplied secret that does not match the
// intent's. An absent secret on either side is not checked.
func VerifyClientSecret(intent *domain.PaymentIntent, supplied *string) error {
	if supplied == nil || intent.ClientSecret == nil {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(*supplied), []byte(*intent.ClientSecret)) != 1 {
		return apperror.ErrClientSecretInvalid()
	}
	return nil
}

// LoadAddress reads the stored address with id. A nil id yields nil.
func LoadAddress(ctx context.Context, repo ports.AddressRepository, id *string) (*domain.Address, error) {
	if id == nil {
		return nil, nil
	}
	addr, err := repo.FindByID(ctx, *id)
	if err != nil {
		return nil, StorageError(err)
	}
	return addr, nil
}

// SaveAddress writes details over current, or inserts them as a new address
// when there is no current one. Nil details return current unchanged.
func SaveAddress(ctx context.Context, repo ports.AddressRepository, details *ports.AddressDetails, current *domain.Address, merchantID string, customerID *string) (*domain.Address, error) {
	if details == nil {
		return current, nil
	}
	if current != nil {
		updated, err := repo.Update(ctx, current, domain.AddressUpdate{
			Line1:     details.Line1,
			Line2:     details.Line2,
			City:      details.City,
			State:     details.State,
			Zip:       details.Zip,
			Country:   details.Country,
			FirstName: details.FirstName,
			LastName:  details.LastName,
		})
		if err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		return updated, nil
	}

	now := time.Now().UTC()
	addr, err := repo.Insert(ctx, &domain.Address{
		AddressID:  domain.NewID("addr"),
		MerchantID: merchantID,
		CustomerID: customerID,
		Line1:      details.Line1,
		Line2:      details.Line2,
		City:       details.City,
		State:      details.State,
		Zip:        details.Zip,
		Country:    details.Country,
		FirstName:  details.FirstName,
		LastName:   details.LastName,
		CreatedAt:  now,
		ModifiedAt: now,
	})
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return addr, nil
}

// SaveAddresses writes the address changes carried by data and points
// data.Shipping and data.Billing at the stored rows.
func SaveAddresses(ctx context.Context, store Store, data *PaymentData, customerID *string) error {
	shipping, err := SaveAddress(ctx, store.Addresses, data.ShippingDetails, data.Shipping, data.Intent.MerchantID, customerID)
	if err != nil {
		return err
	}
	billing, err := SaveAddress(ctx, store.Addresses, data.BillingDetails, data.Billing, data.Intent.MerchantID, customerID)
	if err != nil {
		return err
	}
	data.Shipping, data.Billing = shipping, billing
	data.ShippingDetails, data.BillingDetails = nil, nil
	return nil
}

// AddressID returns the id of addr, or nil.
func AddressID(addr *domain.Address) *string {
	if addr == nil {
		return nil
	}
	id := addr.AddressID
	return &id
}

// CustomerFromRequest extracts the customer context of a payments request.
func CustomerFromRequest(req ports.PaymentsRequest) *domain.CustomerDetails {
	if req.CustomerID == nil && req.Name == nil && req.Email == nil && req.Phone == nil {
		return nil
	}
	return &domain.CustomerDetails{
		CustomerID: req.CustomerID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
	}
}

// NewRouterData builds the flow invocation record shared by every flow.
func NewRouterData[FReq any](data *PaymentData, connectorName string, request FReq) connector.RouterData[FReq] {
	rd := connector.RouterData[FReq]{
		Flow:               data.Flow,
		Connector:          connectorName,
		MerchantID:         data.Intent.MerchantID,
		PaymentID:          data.Intent.PaymentID,
		AttemptID:          data.Attempt.AttemptID,
		Status:             data.Attempt.Status,
		AuthenticationType: data.Attempt.AuthType(),
		Amount:             data.Amount,
		Currency:           data.Currency,
		Request:            request,
	}
	if data.Attempt.PaymentMethod != nil {
		rd.PaymentMethod = *data.Attempt.PaymentMethod
	}
	if data.Intent.ReturnURL != nil {
		rd.ReturnURL = *data.Intent.ReturnURL
	}
	return rd
}

// AuthorizeRequest builds the authorize request half from the working state.
func AuthorizeRequest(data *PaymentData) connector.AuthorizeData {
	req := connector.AuthorizeData{
		Amount:        data.Amount,
		Currency:      data.Currency,
		Confirm:       true,
		CaptureMethod: data.Attempt.CaptureMethod,
		SetupMandate:  data.SetupMandate != nil,
	}
	if data.Confirm != nil {
		req.Confirm = *data.Confirm
	}
	if data.Intent.Description != nil {
		req.Description = *data.Intent.Description
	}
	if data.MandateID != nil {
		req.MandateID = *data.MandateID
	}
	if data.Token != nil {
		req.Token = *data.Token
	}
	if pmd := data.PaymentMethodData; pmd != nil {
		if pmd.Token != nil && req.Token == "" {
			req.Token = *pmd.Token
		}
		if c := pmd.Card; c != nil {
			req.Card = &connector.Card{
				Number:   c.Number,
				ExpMonth: c.ExpMonth,
				ExpYear:  c.ExpYear,
				CVC:      c.CVC,
			}
			if c.HolderName != nil {
				req.Card.HolderName = *c.HolderName
			}
		}
	}
	return req
}

// Transition applies the flow's transition policy to the working state.
func Transition(data *PaymentData) (StatusPair, error) {
	prior := StatusPair{Intent: data.Intent.Status, Attempt: data.Attempt.Status}
	next, err := NextStatus(data.Flow, prior, data.Attempt.AuthType(), data.Outcome)
	if err != nil {
		return prior, wrapStage("transition", err)
	}
	return next, nil
}

// SaveConnectorResponse overwrites the connector response record of the
// current attempt when the connector returned a transaction id.
func SaveConnectorResponse(ctx context.Context, store Store, data *PaymentData) error {
	txnID := data.Outcome.ConnectorTransactionID()
	if txnID == nil {
		return nil
	}
	now := time.Now().UTC()
	resp := &domain.ConnectorResponse{
		PaymentID:              data.Attempt.PaymentID,
		MerchantID:             data.Attempt.MerchantID,
		TxnID:                  data.Attempt.TxnID,
		ConnectorTransactionID: txnID,
		ModifiedAt:             now,
	}
	if name := data.Outcome.Connector; name != "" {
		resp.ConnectorName = &name
	}
	if prev := data.ConnectorResponse; prev != nil {
		resp.CreatedAt = prev.CreatedAt
		resp.EncodedData = prev.EncodedData
	} else {
		resp.CreatedAt = now
	}
	if r := data.Outcome.Response; r != nil && r.RedirectURL != nil {
		auth, err := json.Marshal(map[string]string{"redirect_url": *r.RedirectURL})
		if err != nil {
			return apperror.InternalError(err)
		}
		resp.AuthenticationData = auth
	}

	saved, err := store.ConnectorResponses.Upsert(ctx, resp)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	data.ConnectorResponse = saved
	return nil
}

// RedirectURL reads the redirect target stored with a connector response.
func RedirectURL(resp *domain.ConnectorResponse) string {
	if resp == nil || len(resp.AuthenticationData) == 0 {
		return ""
	}
	var auth struct {
		RedirectURL string `json:"redirect_url"`
	}
	if err := json.Unmarshal(resp.AuthenticationData, &auth); err != nil {
		return ""
	}
	return auth.RedirectURL
}

// LoadConnectorResponse reads the connector response of attempt.
func LoadConnectorResponse(ctx context.Context, store Store, attempt *domain.PaymentAttempt) (*domain.ConnectorResponse, error) {
	resp, err := store.ConnectorResponses.Find(ctx, attempt.PaymentID, attempt.MerchantID, attempt.TxnID)
	if err != nil {
		return nil, StorageError(err)
	}
	return resp, nil
}
