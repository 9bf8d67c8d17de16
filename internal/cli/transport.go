package cli

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/shaiso/orchestra-cli/internal/telemetry"
)

type endpointKey struct{}

// withEndpoint помечает запрос логическим именем endpoint'а для логов
// и метрик (alias в пути не попадает в метки).
func withEndpoint(ctx context.Context, endpoint string) context.Context {
	return context.WithValue(ctx, endpointKey{}, endpoint)
}

// instrumentedTransport логирует и учитывает каждый HTTP-запрос.
type instrumentedTransport struct {
	next    http.RoundTripper
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// RoundTrip реализует http.RoundTripper.
func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)
	endpoint, _ := req.Context().Value(endpointKey{}).(string)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	if t.metrics != nil {
		t.metrics.ObserveHTTP(req.Method, endpoint, status, duration)
	}

	attrs := []any{
		"method", req.Method,
		"endpoint", endpoint,
		"url", req.URL.Redacted(),
		"status", status,
		"duration", duration,
		"request_id", req.Header.Get("X-Request-ID"),
	}
	// логгер команды (command, alias) приходит через контекст запроса
	logger := telemetry.FromContext(req.Context(), t.logger)
	if err != nil {
		logger.Warn("http request failed", append(attrs, "error", err)...)
	} else {
		logger.Debug("http request", attrs...)
	}

	return resp, err
}
