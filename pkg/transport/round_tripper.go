package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofrs/uuid/v5"

	"github.com/memberwd/backoffice/pkg/logger"
)

// TraceRoundTripper stamps every outgoing request with an X-Request-Id
// header and logs the request/response pair.
type TraceRoundTripper struct {
	Transport http.RoundTripper
}

func NewTraceRoundTripper(transport http.RoundTripper) *TraceRoundTripper {
	return &TraceRoundTripper{Transport: transport}
}

func (t *TraceRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	reqID := logger.RequestIDFromCtx(ctx)
	if reqID == "" {
		if id, err := uuid.NewV4(); err == nil {
			reqID = id.String()
		}
	}

	if reqID != "" {
		r.Header.Set("X-Request-Id", reqID)
	}

	slog.InfoContext(ctx, "outgoing request", "request", fmt.Sprintf("%s %s", r.Method, r.URL.Redacted()))

	resp, err := t.Transport.RoundTrip(r)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}

	slog.InfoContext(ctx, "incoming response",
		"response", fmt.Sprintf("%s %s", r.Method, r.URL.Redacted()),
		"status", resp.StatusCode,
	)

	return resp, nil
}
