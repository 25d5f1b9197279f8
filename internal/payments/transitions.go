package payments

import (
	"fmt"

	"payment-router/internal/core/domain"
)

// StatusPair is an (intent, attempt) status combination.
type StatusPair struct {
	Intent  domain.IntentStatus
	Attempt domain.AttemptStatus
}

func pair(i domain.IntentStatus, a domain.AttemptStatus) StatusPair {
	return StatusPair{Intent: i, Attempt: a}
}

// sanctioned lists every pair a flow may persist.
var sanctioned = map[domain.Flow]map[StatusPair]struct{}{
	domain.FlowAuthorize: set(
		pair(domain.IntentStatusProcessing, domain.AttemptStatusPending),
		pair(domain.IntentStatusRequiresCustomerAction, domain.AttemptStatusPendingVbv),
		pair(domain.IntentStatusFailed, domain.AttemptStatusAuthorizationFailed),
	),
	domain.FlowVoid: set(
		pair(domain.IntentStatusCancelled, domain.AttemptStatusVoided),
		pair(domain.IntentStatusFailed, domain.AttemptStatusVoidFailed),
	),
	domain.FlowCapture: set(
		pair(domain.IntentStatusSucceeded, domain.AttemptStatusCharged),
		pair(domain.IntentStatusFailed, domain.AttemptStatusCaptureFailed),
	),
	domain.FlowPSync: set(
		pair(domain.IntentStatusSucceeded, domain.AttemptStatusCharged),
		pair(domain.IntentStatusRequiresCapture, domain.AttemptStatusAuthorized),
		pair(domain.IntentStatusProcessing, domain.AttemptStatusPending),
		pair(domain.IntentStatusRequiresCustomerAction, domain.AttemptStatusPendingVbv),
		pair(domain.IntentStatusCancelled, domain.AttemptStatusVoided),
		pair(domain.IntentStatusFailed, domain.AttemptStatusAuthorizationFailed),
		pair(domain.IntentStatusFailed, domain.AttemptStatusFailure),
	),
}

func set(pairs ...StatusPair) map[StatusPair]struct{} {
	m := make(map[StatusPair]struct{}, len(pairs))
	for _, p := range pairs {
		m[p] = struct{}{}
	}
	return m
}

// Sanctioned reports whether flow may persist p.
func Sanctioned(flow domain.Flow, p StatusPair) bool {
	_, ok := sanctioned[flow][p]
	return ok
}

// NextStatus is the transition policy: the pair a flow writes for the prior
// pair and connector outcome. A skipped call keeps the prior pair, and so
// does a sync of a settled attempt unless the connector reports another
// settled state.
func NextStatus(flow domain.Flow, prior StatusPair, authType domain.AuthenticationType, outcome ConnectorOutcome) (StatusPair, error) {
	if outcome.Kind == OutcomeSkipped {
		return prior, nil
	}

	var next StatusPair
	switch flow {
	case domain.FlowAuthorize:
		next = authorizeTransition(authType, outcome)
	case domain.FlowVoid:
		next = pair(domain.IntentStatusCancelled, domain.AttemptStatusVoided)
		if failed(outcome) {
			next = pair(domain.IntentStatusFailed, domain.AttemptStatusVoidFailed)
		}
	case domain.FlowCapture:
		next = pair(domain.IntentStatusSucceeded, domain.AttemptStatusCharged)
		if failed(outcome) {
			next = pair(domain.IntentStatusFailed, domain.AttemptStatusCaptureFailed)
		}
	case domain.FlowPSync:
		next = syncTransition(outcome)
		if prior.Attempt.IsTerminal() && !resettles(outcome, next) {
			return prior, nil
		}
	default:
		return prior, fmt.Errorf("no transition table for flow %q", flow)
	}

	if !Sanctioned(flow, next) {
		return prior, fmt.Errorf("flow %s produced unsanctioned pair %s/%s", flow, next.Intent, next.Attempt)
	}
	return next, nil
}

func failed(o ConnectorOutcome) bool {
	return o.Kind == OutcomeFailure || o.Declined()
}

func authorizeTransition(authType domain.AuthenticationType, o ConnectorOutcome) StatusPair {
	if failed(o) {
		return pair(domain.IntentStatusFailed, domain.AttemptStatusAuthorizationFailed)
	}
	if authType == domain.AuthenticationNoThreeDS {
		return pair(domain.IntentStatusProcessing, domain.AttemptStatusPending)
	}
	return pair(domain.IntentStatusRequiresCustomerAction, domain.AttemptStatusPendingVbv)
}

// resettles reports whether a sync outcome may replace a terminal attempt
// status: only an explicit, recognized terminal status from the connector.
func resettles(o ConnectorOutcome, next StatusPair) bool {
	return o.Kind == OutcomeSuccess && next.Attempt.IsTerminal() && next.Attempt != domain.AttemptStatusFailure
}

func syncTransition(o ConnectorOutcome) StatusPair {
	if o.Kind != OutcomeSuccess || o.Response == nil {
		return pair(domain.IntentStatusFailed, domain.AttemptStatusFailure)
	}
	switch o.Response.Status {
	case domain.AttemptStatusCharged:
		return pair(domain.IntentStatusSucceeded, domain.AttemptStatusCharged)
	case domain.AttemptStatusAuthorized:
		return pair(domain.IntentStatusRequiresCapture, domain.AttemptStatusAuthorized)
	case domain.AttemptStatusPending, domain.AttemptStatusAuthorizing, domain.AttemptStatusStarted:
		return pair(domain.IntentStatusProcessing, domain.AttemptStatusPending)
	case domain.AttemptStatusPendingVbv:
		return pair(domain.IntentStatusRequiresCustomerAction, domain.AttemptStatusPendingVbv)
	case domain.AttemptStatusVoided:
		return pair(domain.IntentStatusCancelled, domain.AttemptStatusVoided)
	case domain.AttemptStatusAuthorizationFailed:
		return pair(domain.IntentStatusFailed, domain.AttemptStatusAuthorizationFailed)
	default:
		return pair(domain.IntentStatusFailed, domain.AttemptStatusFailure)
	}
}
