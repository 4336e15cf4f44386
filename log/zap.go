package log

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type zapLogger struct {
	l *zap.Logger
}

// Zap adapts zap logger. Logger names from context become zap logger name,
// FATAL records are written with error level and never exit the process.
func Zap(l *zap.Logger) Logger {
	return &zapLogger{l: l}
}

func (z *zapLogger) Log(ctx context.Context, msg string, fields ...Field) {
	logger := z.l
	if names := NamesFromContext(ctx); len(names) > 0 {
		logger = logger.Named(strings.Join(names, "."))
	}

	ce := logger.Check(zapLevel(LevelFromContext(ctx)), msg)
	if ce == nil {
		return
	}

	ce.Write(zapFields(fields)...)
}

func zapLevel(lvl Level) zapcore.Level {
	switch lvl {
	case TRACE, DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func zapFields(fields []Field) []zap.Field {
	zf := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		switch f.Type() {
		case IntType:
			zf = append(zf, zap.Int(f.Key(), f.IntValue()))
		case Int64Type:
			zf = append(zf, zap.Int64(f.Key(), f.Int64Value()))
		case StringType:
			zf = append(zf, zap.String(f.Key(), f.StringValue()))
		case BoolType:
			zf = append(zf, zap.Bool(f.Key(), f.BoolValue()))
		case DurationType:
			zf = append(zf, zap.Duration(f.Key(), f.DurationValue()))
		case StringsType:
			zf = append(zf, zap.Strings(f.Key(), f.StringsValue()))
		case ErrorType:
			zf = append(zf, zap.NamedError(f.Key(), f.ErrorValue()))
		case StringerType:
			zf = append(zf, zap.Stringer(f.Key(), f.StringerValue()))
		default:
			zf = append(zf, zap.Any(f.Key(), f.AnyValue()))
		}
	}

	return zf
}
