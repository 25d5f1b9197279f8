package connector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"payment-router/pkg/logger"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxResponseBytes = 1 << 20

// HTTPClient abstracts HTTP calls (for testability).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Observer records the outcome of connector calls.
type Observer interface {
	ObserveConnectorCall(connector, flow, outcome string, elapsed time.Duration)
}

// Executor performs connector calls. It holds no per-call state.
type Executor struct {
	client         HTTPClient
	defaultTimeout time.Duration
	observer       Observer
	tracer         trace.Tracer
	log            zerolog.Logger
}

// NewExecutor creates an executor. observer and tracer may be nil.
func NewExecutor(client HTTPClient, defaultTimeout time.Duration, observer Observer, tracer trace.Tracer, log zerolog.Logger) *Executor {
	if tracer == nil {
		tracer = otel.Tracer("payment-router/connector")
	}
	return &Executor{
		client:         client,
		defaultTimeout: defaultTimeout,
		observer:       observer,
		tracer:         tracer,
		log:            log,
	}
}

// Execute runs one flow against one integration. Skip returns data unchanged
// without touching the network. Trigger issues exactly one HTTP call; on
// failure data is returned unchanged together with a *Error.
//
// The call is detached from ctx cancellation so an aborted inbound request
// does not abort an in-flight connector call; only the timeout bounds it.
func Execute[Req any](ctx context.Context, e *Executor, integ Integration[Req], data RouterData[Req], auth Auth, action CallAction) (RouterData[Req], error) {
	if action == Skip {
		return data, nil
	}

	meta := integ.Metadata()
	timeout := meta.Timeout
	if timeout <= 0 {
		timeout = e.defaultTimeout
	}

	ctx, span := e.tracer.Start(ctx, "connector."+string(data.Flow), trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("connector.name", meta.Name),
		attribute.String("payment.flow", string(data.Flow)),
		attribute.String("payment.id", data.PaymentID),
	)
	log := logger.WithSpan(ctx, e.log).With().
		Str("connector", meta.Name).
		Str("flow", string(data.Flow)).
		Str("payment_id", data.PaymentID).
		Logger()

	start := time.Now()
	parsed, err := doCall(ctx, e, integ, meta, data, auth, timeout)
	elapsed := time.Since(start)

	outcome := "success"
	if err != nil {
		var cErr *Error
		if errors.As(err, &cErr) {
			outcome = string(cErr.Kind)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		log.Warn().Err(err).Dur("elapsed", elapsed).Msg("connector call failed")
	} else {
		log.Info().Str("connector_status", string(parsed.Status)).Dur("elapsed", elapsed).Msg("connector call completed")
	}
	if e.observer != nil {
		e.observer.ObserveConnectorCall(meta.Name, string(data.Flow), outcome, elapsed)
	}

	if err != nil {
		return data, err
	}
	data.Response = &parsed
	return data, nil
}

func doCall[Req any](ctx context.Context, e *Executor, integ Integration[Req], meta Metadata, data RouterData[Req], auth Auth, timeout time.Duration) (PaymentsResponseData, error) {
	fail := func(kind ErrorKind, status int, err error) *Error {
		return &Error{Kind: kind, Connector: meta.Name, Flow: data.Flow, StatusCode: status, Err: err}
	}

	wire, err := integ.BuildRequest(data, auth)
	if err != nil {
		return PaymentsResponseData{}, fail(KindRequestEncoding, 0, err)
	}

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, wire.Method, wire.URL, bytes.NewReader(wire.Body))
	if err != nil {
		return PaymentsResponseData{}, fail(KindRequestEncoding, 0, err)
	}
	if len(wire.Body) > 0 && meta.ContentType != "" {
		req.Header.Set("Content-Type", meta.ContentType)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range wire.Headers {
		req.Header.Set(k, v)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		if isTimeout(callCtx, err) {
			return PaymentsResponseData{}, fail(KindTimeout, 0, err)
		}
		return PaymentsResponseData{}, fail(KindTransport, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if isTimeout(callCtx, err) {
			return PaymentsResponseData{}, fail(KindTimeout, resp.StatusCode, err)
		}
		return PaymentsResponseData{}, fail(KindTransport, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		cErr := fail(KindRemoteStatus, resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode))
		if parsed, perr := integ.ParseError(resp.StatusCode, body); perr == nil {
			cErr.Code = parsed.Code
			cErr.Message = parsed.Message
		}
		return PaymentsResponseData{}, cErr
	}

	parsed, err := integ.ParseResponse(data, body)
	if err != nil {
		return PaymentsResponseData{}, fail(KindMalformedResponse, resp.StatusCode, err)
	}
	return parsed, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
