package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestSetup_NoEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), "test", "0.0.0", "")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	assert.NoError(t, shutdown(context.Background()))
}

func TestNewHTTPHandler_StartsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	var sawSpan bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawSpan = trace.SpanFromContext(r.Context()).SpanContext().IsValid()
		w.WriteHeader(http.StatusNoContent)
	})

	handler := NewHTTPHandler(inner, "test", otelhttp.WithTracerProvider(tp))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, sawSpan)
	assert.Len(t, recorder.Ended(), 1)
}

func TestNewResource(t *testing.T) {
	res, err := newResource(context.Background(), "errorhandler", "1.2.3")
	require.NoError(t, err)

	var name string
	for _, kv := range res.Attributes() {
		if kv.Key == "service.name" {
			name = kv.Value.AsString()
		}
	}

	assert.Equal(t, "errorhandler", name)
}
