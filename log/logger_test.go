package log

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultLogger(t *testing.T) {
	for _, tt := range []struct {
		name   string
		opts   []Option
		lvl    Level
		fields []Field
		exp    string
	}{
		{
			name: "Plain",
			lvl:  INFO,
			exp:  "1984-04-04 00:00:00.000 INFO 'horaedb.router' => message\n",
		},
		{
			name:   "WithFields",
			lvl:    WARN,
			fields: []Field{String("table", "t1"), Int("attempt", 2), Error(errors.New("boom"))},
			exp:    "1984-04-04 00:00:00.000 WARN 'horaedb.router' => message {\"table\":\"t1\",\"attempt\":\"2\",\"error\":\"boom\"}\n",
		},
		{
			name: "Coloring",
			opts: []Option{WithColoring()},
			lvl:  ERROR,
			exp:  "\u001B[31m1984-04-04 00:00:00.000 ERROR 'horaedb.router' => message\u001B[0m\n",
		},
		{
			name: "BelowMinLevel",
			lvl:  DEBUG,
			exp:  "",
		},
		{
			name: "LoweredMinLevel",
			opts: []Option{WithMinLevel(TRACE)},
			lvl:  DEBUG,
			exp:  "1984-04-04 00:00:00.000 DEBUG 'horaedb.router' => message\n",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := Default(&buf, append([]Option{WithClock(clockwork.NewFakeClock())}, tt.opts...)...)
			ctx := WithLevel(WithNames(context.Background(), "horaedb", "router"), tt.lvl)
			l.Log(ctx, "message", tt.fields...)
			require.Equal(t, tt.exp, buf.String())
		})
	}
}

func TestNames(t *testing.T) {
	parent := WithNames(context.Background(), "horaedb")
	a := WithNames(parent, "router")
	b := WithNames(parent, "conn")
	require.Equal(t, []string{"horaedb"}, NamesFromContext(parent))
	require.Equal(t, []string{"horaedb", "router"}, NamesFromContext(a))
	require.Equal(t, []string{"horaedb", "conn"}, NamesFromContext(b))
}

func TestFieldString(t *testing.T) {
	for _, tt := range []struct {
		f    Field
		want string
	}{
		{f: Int("int", 1), want: "1"},
		{f: Int64("int64", 9223372036854775807), want: "9223372036854775807"},
		{f: String("string", "test"), want: "test"},
		{f: Bool("bool", true), want: "true"},
		{f: Duration("duration", time.Hour), want: time.Hour.String()},
		{f: Strings("strings", []string{"Abc", "Def"}), want: "[Abc Def]"},
		{f: NamedError("named_error", errors.New("named error")), want: "named error"},
		{f: Error(nil), want: "<nil>"},
		{f: Stringer("stringer", time.Second), want: "1s"},
		{f: Any("any", struct{ A int }{A: 1}), want: "{1}"},
	} {
		t.Run(tt.f.Key(), func(t *testing.T) {
			require.Equal(t, tt.want, tt.f.String())
		})
	}
	require.Panics(t, func() {
		_ = Field{key: "invalid"}.String()
	})
}

func TestZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Zap(zap.New(core))

	ctx := WithNames(context.Background(), "horaedb", "conn")
	Debug(ctx, l, "dial", String("address", "127.0.0.1:8831"))
	Warn(ctx, l, "dial failed", Error(errors.New("refused")), Duration("took", time.Second))
	l.Log(WithLevel(ctx, FATAL), "fatal")

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)

	require.Equal(t, zapcore.DebugLevel, entries[0].Level)
	require.Equal(t, "horaedb.conn", entries[0].LoggerName)
	require.Equal(t, "dial", entries[0].Message)
	require.Equal(t, map[string]interface{}{"address": "127.0.0.1:8831"}, entries[0].ContextMap())

	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, "refused", entries[1].ContextMap()["error"])
	require.Equal(t, time.Second, entries[1].ContextMap()["took"])

	require.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestGoKit(t *testing.T) {
	var buf bytes.Buffer
	l := GoKit(kitlog.NewLogfmtLogger(&buf))

	Info(WithNames(context.Background(), "horaedb"), l, "route refreshed", Strings("tables", []string{"t1"}))
	require.Equal(t, "level=info logger=horaedb msg=\"route refreshed\" tables=[t1]\n", buf.String())

	buf.Reset()
	Debug(context.Background(), l, "no names")
	require.Equal(t, "level=debug msg=\"no names\"\n", buf.String())
}

func TestNop(t *testing.T) {
	require.NotPanics(t, func() {
		Nop().Log(context.Background(), "discarded", String("k", "v"))
	})
}

func TestLevelFromString(t *testing.T) {
	for _, tt := range []struct {
		s   string
		exp Level
	}{
		{s: "TRACE", exp: TRACE},
		{s: "debug", exp: DEBUG},
		{s: "Info", exp: INFO},
		{s: "WARN", exp: WARN},
		{s: "error", exp: ERROR},
		{s: "FATAL", exp: FATAL},
		{s: "verbose", exp: QUIET},
		{s: "", exp: QUIET},
	} {
		t.Run(tt.s, func(t *testing.T) {
			require.Equal(t, tt.exp, FromString(tt.s))
		})
	}
	require.Equal(t, "QUIET", Level(42).String())
}
