package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"
)

type fieldsKey struct{}

// fields are the per-request identifiers carried into every log record.
type fields struct {
	requestID string
	userID    string
	tenantID  string
}

// Config holds logger configuration
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // json, text
	Output      io.Writer
	AddSource   bool
	ServiceName string
	Environment string
}

// NewLogger creates a structured logger that stamps every record with the
// service metadata and the request identifiers found in its context.
func NewLogger(cfg Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				return slog.String(a.Key, a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	var handler slog.Handler = slog.NewJSONHandler(output, opts)
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(output, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	})

	return slog.New(&contextHandler{Handler: handler})
}

// contextHandler adds the request identifiers stored in ctx.
type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(contextAttrs(ctx)...)
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}

func contextAttrs(ctx context.Context) []slog.Attr {
	f, ok := ctx.Value(fieldsKey{}).(fields)
	if !ok {
		return nil
	}

	attrs := make([]slog.Attr, 0, 3)
	if f.requestID != "" {
		attrs = append(attrs, slog.String("request_id", f.requestID))
	}
	if f.userID != "" {
		attrs = append(attrs, slog.String("user_id", f.userID))
	}
	if f.tenantID != "" {
		attrs = append(attrs, slog.String("tenant_id", f.tenantID))
	}
	return attrs
}

func withFields(ctx context.Context, update func(*fields)) context.Context {
	f, _ := ctx.Value(fieldsKey{}).(fields)
	update(&f)
	return context.WithValue(ctx, fieldsKey{}, f)
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withFields(ctx, func(f *fields) { f.requestID = requestID })
}

// WithUserID adds the authenticated user to the context
func WithUserID(ctx context.Context, userID string) context.Context {
	return withFields(ctx, func(f *fields) { f.userID = userID })
}

// WithTenantID adds the authenticated user's tenant to the context
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return withFields(ctx, func(f *fields) { f.tenantID = tenantID })
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	f, _ := ctx.Value(fieldsKey{}).(fields)
	return f.requestID
}

// LoggerFromContext binds the request identifiers in ctx to logger, for
// components that log without passing ctx along.
func LoggerFromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	attrs := contextAttrs(ctx)
	if len(attrs) == 0 {
		return logger
	}

	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return logger.With(args...)
}

// LogPanic logs a recovered panic value with the current goroutine's stack.
func LogPanic(logger *slog.Logger, panicValue any) {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)

	logger.Error("panic recovered",
		"panic", panicValue,
		"stack_trace", string(buf[:n]),
	)
}
