package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/memberwd/backoffice/internal/entity"
)

type ctxKey uint8

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyUserID
	ctxKeyTenant
	ctxKeyCommand
)

const originService = "memberwd-backoffice"

type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if v, ok := ctx.Value(ctxKeyRequestID).(string); ok && v != "" {
		record.Add("request_id", v)
	}

	if v, ok := ctx.Value(ctxKeyUserID).(string); ok && v != "" {
		record.Add("user_id", v)
	}

	if v, ok := ctx.Value(ctxKeyTenant).(string); ok && v != "" {
		record.Add("tenant", v)
	}

	if v, ok := ctx.Value(ctxKeyCommand).(string); ok && v != "" {
		record.Add("command", v)
	}

	record.Add("origin_service", originService)

	return h.Handler.Handle(ctx, record)
}

func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func New(level slog.Level) *slog.Logger {
	return slog.New(newHandler(os.Stderr, level, false))
}

// NewPretty logs human-readable key=value lines instead of JSON, for
// interactive terminal use.
func NewPretty(level slog.Level) *slog.Logger {
	return slog.New(newHandler(os.Stderr, level, true))
}

func newHandler(w io.Writer, level slog.Level, pretty bool) *Handler {
	opts := &slog.HandlerOptions{Level: level}

	if pretty {
		return &Handler{slog.NewTextHandler(w, opts)}
	}

	return &Handler{slog.NewJSONHandler(w, opts)}
}

func FromContext(ctx context.Context) *slog.Logger {
	log, ok := ctx.Value(entity.CtxKeyLogger{}).(*slog.Logger)
	if !ok {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return log
}

func SetRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, reqID)
}

func RequestIDFromCtx(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}

func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

func SetTenant(ctx context.Context, tenant string) context.Context {
	return context.WithValue(ctx, ctxKeyTenant, tenant)
}

func SetCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, ctxKeyCommand, command)
}
