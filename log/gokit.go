package log

import (
	"context"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type goKitLogger struct {
	l kitlog.Logger
}

// GoKit adapts go-kit logger, records are emitted as `level`, `logger`, `msg` and field key-values
func GoKit(l kitlog.Logger) Logger {
	return &goKitLogger{l: l}
}

func (g *goKitLogger) Log(ctx context.Context, msg string, fields ...Field) {
	keyvals := make([]interface{}, 0, 4+2*len(fields))
	if names := NamesFromContext(ctx); len(names) > 0 {
		keyvals = append(keyvals, "logger", strings.Join(names, "."))
	}
	keyvals = append(keyvals, "msg", msg)
	for _, f := range fields {
		keyvals = append(keyvals, f.Key(), f.String())
	}

	_ = goKitLevel(g.l, LevelFromContext(ctx)).Log(keyvals...)
}

func goKitLevel(l kitlog.Logger, lvl Level) kitlog.Logger {
	switch lvl {
	case TRACE, DEBUG:
		return level.Debug(l)
	case INFO:
		return level.Info(l)
	case WARN:
		return level.Warn(l)
	default:
		return level.Error(l)
	}
}
