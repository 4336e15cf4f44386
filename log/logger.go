package log

import (
	"context"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
)

const dateLayout = "2006-01-02 15:04:05.000"

type Logger interface {
	// Log logs the message with level and names from ctx.
	// Implementations must not use slice of fields after Log returns.
	Log(ctx context.Context, msg string, fields ...Field)
}

var (
	_ Logger = (*defaultLogger)(nil)
	_ Logger = nopLogger{}
)

type Option func(l *defaultLogger)

func WithColoring() Option {
	return func(l *defaultLogger) {
		l.coloring = true
	}
}

func WithMinLevel(level Level) Option {
	return func(l *defaultLogger) {
		l.minLevel = level
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(l *defaultLogger) {
		l.clock = clock
	}
}

// Default returns text logger writing one line per record into w.
// Records below INFO are skipped unless WithMinLevel lowers the threshold.
func Default(w io.Writer, opts ...Option) *defaultLogger {
	l := &defaultLogger{
		minLevel: INFO,
		clock:    clockwork.NewRealClock(),
		w:        w,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	return l
}

type defaultLogger struct {
	coloring bool
	minLevel Level
	clock    clockwork.Clock

	mu sync.Mutex
	w  io.Writer
}

func (l *defaultLogger) Log(ctx context.Context, msg string, fields ...Field) {
	lvl := LevelFromContext(ctx)
	if lvl < l.minLevel {
		return
	}

	var b strings.Builder
	if l.coloring {
		b.WriteString(lvl.Color())
	}
	b.WriteString(l.clock.Now().Format(dateLayout))
	b.WriteByte(' ')
	b.WriteString(lvl.String())
	b.WriteString(" '")
	b.WriteString(strings.Join(NamesFromContext(ctx), "."))
	b.WriteString("' => ")
	b.WriteString(msg)
	if len(fields) > 0 {
		b.WriteString(" {")
		for i := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(fields[i].Key()))
			b.WriteByte(':')
			b.WriteString(strconv.Quote(fields[i].String()))
		}
		b.WriteByte('}')
	}
	if l.coloring {
		b.WriteString(colorReset)
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.w, b.String())
}

type nopLogger struct{}

func (nopLogger) Log(context.Context, string, ...Field) {}

// Nop returns logger which discards all records
func Nop() Logger {
	return nopLogger{}
}

func Debug(ctx context.Context, l Logger, msg string, fields ...Field) {
	l.Log(WithLevel(ctx, DEBUG), msg, fields...)
}

func Info(ctx context.Context, l Logger, msg string, fields ...Field) {
	l.Log(WithLevel(ctx, INFO), msg, fields...)
}

func Warn(ctx context.Context, l Logger, msg string, fields ...Field) {
	l.Log(WithLevel(ctx, WARN), msg, fields...)
}
