package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/eddiesosera/bb-frontend/internal/logging"
)

// Transport decorates outgoing requests with a request identifier, structured
// logging, and an optional client-side throttle. It is the client mirror of a
// server's logging middleware.
type Transport struct {
	Base    http.RoundTripper
	Limiter *rate.Limiter
	Logger  *slog.Logger
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if t.Limiter != nil {
		if err := t.Limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	requestID := uuid.NewString()
	req = req.Clone(logging.WithRequestID(req.Context(), requestID))
	req.Header.Set("X-Request-ID", requestID)

	logger := t.Logger
	if logger == nil {
		logger = logging.FromContext(req.Context())
	}
	logger = logger.With(
		slog.String("request_id", requestID),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
	)

	start := time.Now()
	resp, err := base.RoundTrip(req)
	if err != nil {
		logger.Warn("request failed",
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	logger.Debug("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)
	return resp, nil
}
