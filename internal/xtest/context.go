package xtest

import (
	"context"
	"runtime/pprof"
	"testing"
)

// Context returns a context labelled with the test name and cancelled on test cleanup
func Context(t testing.TB) context.Context {
	ctx, cancel := context.WithCancel(pprof.WithLabels(context.Background(), pprof.Labels("test", t.Name())))
	pprof.SetGoroutineLabels(ctx)
	t.Cleanup(cancel)

	return ctx
}
