package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/travel-order-service/internal/config"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "debug", Encoding: "console"}, config.AppConfig{Name: "svc"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = NewLogger(config.LoggerConfig{Level: "bogus"}, config.AppConfig{})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/x", http.MethodGet, 200, time.Millisecond)
	m.RecordError("NOT_FOUND")
	m.RecordCancellation(CancellationRejected)
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/v1/orders/:id", http.MethodGet, 200, time.Millisecond)
	m.RecordRequest("/v1/orders/:id", http.MethodGet, 200, time.Millisecond)
	m.RecordError("VALIDATION_FAILED")
	m.RecordCancellation(CancellationRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/v1/orders/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("VALIDATION_FAILED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cancellations.WithLabelValues(CancellationRejected)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.cancellations.WithLabelValues(CancellationAllowed)))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.RecordCancellation(CancellationAllowed)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `travel_order_cancellations_total{outcome="allowed"} 1`)
}

func TestRequestLogger(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(RequestID(c))
	})

	t.Run("generates id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))
		assert.Equal(t, resp.Header.Get(HeaderRequestID), string(body))
	})

	t.Run("propagates id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))
	})

	count := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/ping", "200"))
	assert.Equal(t, 2.0, count)
}
