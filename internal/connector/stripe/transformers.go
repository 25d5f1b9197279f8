package stripe

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"payment-router/internal/connector"
	"payment-router/internal/core/domain"
)

// paymentIntentResponse is the subset of a Stripe PaymentIntent the router reads.
type paymentIntentResponse struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	LastPaymentError *struct {
		Code        string `json:"code"`
		DeclineCode string `json:"decline_code"`
		Message     string `json:"message"`
	} `json:"last_payment_error"`
	NextAction *struct {
		Type          string `json:"type"`
		RedirectToURL *struct {
			URL string `json:"url"`
		} `json:"redirect_to_url"`
	} `json:"next_action"`
	LatestCharge *string `json:"latest_charge"`
}

type errorResponse struct {
	Error struct {
		Type        string `json:"type"`
		Code        string `json:"code"`
		DeclineCode string `json:"decline_code"`
		Message     string `json:"message"`
	} `json:"error"`
}

// attemptStatus maps a Stripe PaymentIntent status to the router's attempt status.
func attemptStatus(status string) domain.AttemptStatus {
	switch status {
	case "succeeded":
		return domain.AttemptStatusCharged
	case "requires_capture":
		return domain.AttemptStatusAuthorized
	case "processing":
		return domain.AttemptStatusPending
	case "requires_action":
		return domain.AttemptStatusPendingVbv
	case "requires_confirmation":
		return domain.AttemptStatusStarted
	case "requires_payment_method":
		return domain.AttemptStatusAuthorizationFailed
	case "canceled":
		return domain.AttemptStatusVoided
	default:
		return domain.AttemptStatusFailure
	}
}

func parsePaymentIntent(body []byte) (connector.PaymentsResponseData, error) {
	var resp paymentIntentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return connector.PaymentsResponseData{}, fmt.Errorf("decoding stripe payment intent: %w", err)
	}
	if resp.ID == "" {
		return connector.PaymentsResponseData{}, fmt.Errorf("stripe payment intent without id")
	}

	out := connector.PaymentsResponseData{
		ConnectorTransactionID: resp.ID,
		Status:                 attemptStatus(resp.Status),
		NetworkReference:       resp.LatestCharge,
	}
	if resp.NextAction != nil && resp.NextAction.RedirectToURL != nil && resp.NextAction.RedirectToURL.URL != "" {
		redirect := resp.NextAction.RedirectToURL.URL
		out.RedirectURL = &redirect
	}
	if e := resp.LastPaymentError; e != nil {
		code := e.Code
		if e.DeclineCode != "" {
			code = e.DeclineCode
		}
		out.ErrorCode = &code
		out.ErrorMessage = &e.Message
	}
	return out, nil
}

func parseError(body []byte) (connector.ErrorResponse, error) {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return connector.ErrorResponse{}, fmt.Errorf("decoding stripe error: %w", err)
	}
	code := resp.Error.Code
	if code == "" {
		code = resp.Error.Type
	}
	out := connector.ErrorResponse{Code: code, Message: resp.Error.Message}
	if resp.Error.DeclineCode != "" {
		out.Reason = &resp.Error.DeclineCode
	}
	return out, nil
}

// authorizeForm encodes the create-and-confirm PaymentIntent call.
func authorizeForm(data connector.RouterData[connector.AuthorizeData]) (url.Values, error) {
	req := data.Request
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("currency", strings.ToLower(req.Currency))
	form.Set("confirm", strconv.FormatBool(req.Confirm))
	form.Set("metadata[payment_id]", data.PaymentID)
	form.Set("metadata[attempt_id]", data.AttemptID)

	if req.CaptureMethod == domain.CaptureMethodManual {
		form.Set("capture_method", "manual")
	} else {
		form.Set("capture_method", "automatic")
	}

	switch {
	case req.Token != "":
		form.Set("payment_method", req.Token)
	case req.Card != nil:
		form.Set("payment_method_data[type]", "card")
		form.Set("payment_method_data[card][number]", req.Card.Number)
		form.Set("payment_method_data[card][exp_month]", req.Card.ExpMonth)
		form.Set("payment_method_data[card][exp_year]", req.Card.ExpYear)
		form.Set("payment_method_data[card][cvc]", req.Card.CVC)
		if req.Card.HolderName != "" {
			form.Set("payment_method_data[billing_details][name]", req.Card.HolderName)
		}
	default:
		return nil, fmt.Errorf("stripe authorize needs a card or a payment method token")
	}

	if data.AuthenticationType == domain.AuthenticationThreeDS {
		form.Set("payment_method_options[card][request_three_d_secure]", "any")
	} else {
		form.Set("payment_method_options[card][request_three_d_secure]", "automatic")
	}
	if data.ReturnURL != "" {
		form.Set("return_url", data.ReturnURL)
	}
	if req.Description != "" {
		form.Set("description", req.Description)
	}
	if req.MandateID != "" {
		form.Set("off_session", "true")
	} else if req.SetupMandate {
		form.Set("setup_future_usage", "off_session")
	}
	return form, nil
}

// cancellationReason keeps only the reasons Stripe accepts.
func cancellationReason(reason string) string {
	switch reason {
	case "duplicate", "fraudulent", "requested_by_customer", "abandoned":
		return reason
	}
	return ""
}
