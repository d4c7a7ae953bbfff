package logging

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Slog returns a slog.Logger that writes through the underlying zap core,
// so packages using log/slog share the same JSON output and level.
func (l *Logger) Slog() *slog.Logger {
	return slog.New(&slogHandler{zap: l.Zap()})
}

type slogHandler struct {
	zap    *zap.Logger
	fields []zap.Field
	group  string
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.zap.Core().Enabled(slogToZapLevel(level))
}

func (h *slogHandler) Handle(ctx context.Context, rec slog.Record) error {
	fields := make([]zap.Field, 0, len(h.fields)+rec.NumAttrs()+2)
	fields = append(fields, h.fields...)
	rec.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, attrToZapField(h.group, attr))
		return true
	})
	fields = append(fields, traceFields(ctx)...)
	if ce := h.zap.Check(slogToZapLevel(rec.Level), rec.Message); ce != nil {
		ce.Write(fields...)
	}
	return nil
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	fields := make([]zap.Field, 0, len(h.fields)+len(attrs))
	fields = append(fields, h.fields...)
	for _, attr := range attrs {
		fields = append(fields, attrToZapField(h.group, attr))
	}
	return &slogHandler{zap: h.zap, fields: fields, group: h.group}
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	prefix := name
	if h.group != "" {
		prefix = h.group + "." + name
	}
	return &slogHandler{zap: h.zap, fields: h.fields, group: prefix}
}

func slogToZapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

func attrToZapField(group string, attr slog.Attr) zap.Field {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}

	value := attr.Value.Resolve()
	if err, ok := value.Any().(error); ok {
		return zap.NamedError(key, err)
	}

	switch value.Kind() {
	case slog.KindString:
		return zap.String(key, value.String())
	case slog.KindInt64:
		return zap.Int64(key, value.Int64())
	case slog.KindUint64:
		return zap.Uint64(key, value.Uint64())
	case slog.KindFloat64:
		return zap.Float64(key, value.Float64())
	case slog.KindBool:
		return zap.Bool(key, value.Bool())
	case slog.KindDuration:
		return zap.Duration(key, value.Duration())
	case slog.KindTime:
		return zap.Time(key, value.Time())
	default:
		return zap.Any(key, value.Any())
	}
}
