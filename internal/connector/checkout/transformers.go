package checkout

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"payment-router/internal/connector"
	"payment-router/internal/core/domain"
)

type source struct {
	Type        string `json:"type"`
	Number      string `json:"number,omitempty"`
	ExpiryMonth int    `json:"expiry_month,omitempty"`
	ExpiryYear  int    `json:"expiry_year,omitempty"`
	CVV         string `json:"cvv,omitempty"`
	Name        string `json:"name,omitempty"`
	Token       string `json:"token,omitempty"`
}

type threeDS struct {
	Enabled bool `json:"enabled"`
}

type paymentRequest struct {
	Source              source            `json:"source"`
	Amount              int64             `json:"amount"`
	Currency            string            `json:"currency"`
	Reference           string            `json:"reference"`
	Capture             bool              `json:"capture"`
	ThreeDS             threeDS           `json:"3ds"`
	Description         string            `json:"description,omitempty"`
	SuccessURL          string            `json:"success_url,omitempty"`
	FailureURL          string            `json:"failure_url,omitempty"`
	ProcessingChannelID string            `json:"processing_channel_id,omitempty"`
	Metadata            map[string]string `json:"metadata,omitempty"`
}

type actionRequest struct {
	Amount    *int64 `json:"amount,omitempty"`
	Reference string `json:"reference,omitempty"`
}

type paymentResponse struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	Approved        *bool  `json:"approved"`
	ResponseCode    string `json:"response_code"`
	ResponseSummary string `json:"response_summary"`
	SchemeID        string `json:"scheme_id"`
	Links           struct {
		Redirect *struct {
			Href string `json:"href"`
		} `json:"redirect"`
	} `json:"_links"`
}

type actionResponse struct {
	ActionID  string `json:"action_id"`
	Reference string `json:"reference"`
}

type errorResponse struct {
	RequestID  string   `json:"request_id"`
	ErrorType  string   `json:"error_type"`
	ErrorCodes []string `json:"error_codes"`
}

// attemptStatus maps a Checkout.com payment status to the router's attempt status.
func attemptStatus(status string, hasRedirect bool) domain.AttemptStatus {
	switch status {
	case "Authorized", "Card Verified":
		return domain.AttemptStatusAuthorized
	case "Captured", "Partially Captured", "Paid":
		return domain.AttemptStatusCharged
	case "Pending":
		if hasRedirect {
			return domain.AttemptStatusPendingVbv
		}
		return domain.AttemptStatusPending
	case "Declined":
		return domain.AttemptStatusAuthorizationFailed
	case "Voided", "Canceled":
		return domain.AttemptStatusVoided
	default:
		return domain.AttemptStatusFailure
	}
}

func buildPaymentRequest(data connector.RouterData[connector.AuthorizeData], auth connector.Auth) (*paymentRequest, error) {
	req := data.Request
	out := &paymentRequest{
		Amount:              req.Amount,
		Currency:            strings.ToUpper(req.Currency),
		Reference:           data.PaymentID,
		Capture:             req.CaptureMethod != domain.CaptureMethodManual,
		ThreeDS:             threeDS{Enabled: data.AuthenticationType == domain.AuthenticationThreeDS},
		Description:         req.Description,
		SuccessURL:          data.ReturnURL,
		FailureURL:          data.ReturnURL,
		ProcessingChannelID: auth.Key1,
		Metadata:            map[string]string{"attempt_id": data.AttemptID},
	}

	switch {
	case req.Token != "":
		out.Source = source{Type: "token", Token: req.Token}
	case req.Card != nil:
		month, err := strconv.Atoi(req.Card.ExpMonth)
		if err != nil {
			return nil, fmt.Errorf("invalid card expiry month: %w", err)
		}
		year, err := strconv.Atoi(req.Card.ExpYear)
		if err != nil {
			return nil, fmt.Errorf("invalid card expiry year: %w", err)
		}
		out.Source = source{
			Type:        "card",
			Number:      req.Card.Number,
			ExpiryMonth: month,
			ExpiryYear:  year,
			CVV:         req.Card.CVC,
			Name:        req.Card.HolderName,
		}
	default:
		return nil, fmt.Errorf("checkout authorize needs a card or a token")
	}
	return out, nil
}

func parsePayment(body []byte) (connector.PaymentsResponseData, error) {
	var resp paymentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return connector.PaymentsResponseData{}, fmt.Errorf("decoding checkout payment: %w", err)
	}
	if resp.ID == "" {
		return connector.PaymentsResponseData{}, fmt.Errorf("checkout payment without id")
	}

	hasRedirect := resp.Links.Redirect != nil && resp.Links.Redirect.Href != ""
	out := connector.PaymentsResponseData{
		ConnectorTransactionID: resp.ID,
		Status:                 attemptStatus(resp.Status, hasRedirect),
	}
	if hasRedirect {
		href := resp.Links.Redirect.Href
		out.RedirectURL = &href
	}
	if resp.SchemeID != "" {
		out.NetworkReference = &resp.SchemeID
	}
	if resp.Approved != nil && !*resp.Approved && resp.ResponseCode != "" {
		out.ErrorCode = &resp.ResponseCode
		out.ErrorMessage = &resp.ResponseSummary
	}
	return out, nil
}

// parseAction reads the 202 body of a void or capture. The action id is not a
// payment id, so the payment keeps its original connector transaction id.
func parseAction(body []byte, paymentID string, status domain.AttemptStatus) (connector.PaymentsResponseData, error) {
	var resp actionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return connector.PaymentsResponseData{}, fmt.Errorf("decoding checkout action: %w", err)
	}
	if resp.ActionID == "" {
		return connector.PaymentsResponseData{}, fmt.Errorf("checkout action without id")
	}
	return connector.PaymentsResponseData{
		ConnectorTransactionID: paymentID,
		Status:                 status,
	}, nil
}

func parseError(body []byte) (connector.ErrorResponse, error) {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return connector.ErrorResponse{}, fmt.Errorf("decoding checkout error: %w", err)
	}
	if resp.ErrorType == "" && len(resp.ErrorCodes) == 0 {
		return connector.ErrorResponse{}, fmt.Errorf("checkout error body without error_type")
	}
	return connector.ErrorResponse{
		Code:    resp.ErrorType,
		Message: strings.Join(resp.ErrorCodes, ", "),
	}, nil
}
