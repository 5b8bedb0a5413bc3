package instrument

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// setupLogging installs the default slog logger: JSON to stdout fanned out
// to the OTLP log bridge, wrapped by the context and masking handlers.
func (i *Instrument) setupLogging() {
	level := parseLevel(i.opts.LogLevel)

	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				a.Key = "ts"
			case slog.LevelKey:
				a.Key = "severity"
			case slog.SourceKey:
				a.Key = "file"
			}

			return a
		},
	})

	otelHandler := otelslog.NewHandler(i.opts.ServiceName,
		otelslog.WithLoggerProvider(i.loggerProvider),
	)

	var handler slog.Handler = fanoutHandler{handlers: []slog.Handler{jsonHandler, otelHandler}}
	handler = &maskHandler{next: handler, keys: maskSet(i.opts.MaskedKeys)}
	handler = &contextHandler{next: handler, service: i.opts.ServiceName}

	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type fanoutHandler struct {
	handlers []slog.Handler
}

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (f fanoutHandler) Handle(ctx context.Context, rec slog.Record) error {
	var firstErr error
	for _, h := range f.handlers {
		if !h.Enabled(ctx, rec.Level) {
			continue
		}
		if err := h.Handle(ctx, rec.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithAttrs(attrs)
	}

	return fanoutHandler{handlers: next}
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithGroup(name)
	}

	return fanoutHandler{handlers: next}
}

// contextHandler stamps every record with the service name and the request
// correlation ID when present.
type contextHandler struct {
	next    slog.Handler
	service string
}

func (c *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return c.next.Enabled(ctx, level)
}

func (c *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	rec.AddAttrs(slog.String("service", c.service))
	if cid := GetCorrelationID(ctx); cid != "" {
		rec.AddAttrs(slog.String("_cID", cid))
	}

	return c.next.Handle(ctx, rec)
}

func (c *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: c.next.WithAttrs(attrs), service: c.service}
}

func (c *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: c.next.WithGroup(name), service: c.service}
}

// maskHandler redacts attribute values whose keys are configured sensitive
// (passwords, codes, tokens).
type maskHandler struct {
	next slog.Handler
	keys map[string]struct{}
}

func maskSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[strings.ToLower(k)] = struct{}{}
	}

	return set
}

func (m *maskHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return m.next.Enabled(ctx, level)
}

func (m *maskHandler) Handle(ctx context.Context, rec slog.Record) error {
	if len(m.keys) == 0 {
		return m.next.Handle(ctx, rec)
	}

	masked := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(a slog.Attr) bool {
		if _, ok := m.keys[strings.ToLower(a.Key)]; ok {
			a.Value = slog.StringValue("******")
		}
		masked.AddAttrs(a)

		return true
	})

	return m.next.Handle(ctx, masked)
}

func (m *maskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &maskHandler{next: m.next.WithAttrs(attrs), keys: m.keys}
}

func (m *maskHandler) WithGroup(name string) slog.Handler {
	return &maskHandler{next: m.next.WithGroup(name), keys: m.keys}
}
