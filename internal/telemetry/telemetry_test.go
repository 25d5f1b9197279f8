package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"payment-router/config"
	"payment-router/internal/connector"
	"payment-router/internal/payments"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var (
	_ payments.Observer  = (*Metrics)(nil)
	_ connector.Observer = (*Metrics)(nil)
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTracingMiddleware(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	r := gin.New()
	r.Use(TracingMiddleware(tp.Tracer("test"), zerolog.Nop()))
	r.GET("/api/v1/payments/:payment_id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/pay_1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /api/v1/payments/:payment_id", spans[0].Name())
	assert.Equal(t, spans[0].SpanContext().TraceID().String(), w.Header().Get("X-Trace-ID"))
}

func TestInitTracing_Disabled(t *testing.T) {
	tr, err := InitTracing(context.Background(), config.TelemetryConfig{}, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, tr.Tracer)
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestMetrics_Exposition(t *testing.T) {
	m := NewMetrics()
	m.ObserveOperation("confirm", "success")
	m.ObserveOperation("confirm", "success")
	m.ObserveConnectorCall("stripe", "authorize", "timeout", 250*time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `payrouter_operations_total{operation="confirm",outcome="success"} 2`)
	assert.Contains(t, text, `payrouter_connector_calls_total{connector="stripe",flow="authorize",outcome="timeout"} 1`)
	assert.Contains(t, text, `payrouter_connector_call_duration_seconds_count{connector="stripe",flow="authorize"} 1`)
}
