package rpcctx

import (
	"context"
	"time"
)

type (
	ctxTimeoutKey  struct{}
	ctxDatabaseKey struct{}
)

// WithTimeout returns a copy of parent context in which per-call timeout is set to d.
// It overrides the default query or write timeout of client.
func WithTimeout(ctx context.Context, d time.Duration) context.Context {
	return context.WithValue(ctx, ctxTimeoutKey{}, d)
}

// Timeout returns per-call timeout override if it was set with positive value
func Timeout(ctx context.Context) (d time.Duration, ok bool) {
	d, ok = ctx.Value(ctxTimeoutKey{}).(time.Duration)

	return d, ok && d > 0
}

// WithDatabase returns a copy of parent context with target database name
func WithDatabase(ctx context.Context, database string) context.Context {
	return context.WithValue(ctx, ctxDatabaseKey{}, database)
}

// Database returns target database name if it was set
func Database(ctx context.Context) (database string, ok bool) {
	database, ok = ctx.Value(ctxDatabaseKey{}).(string)

	return database, ok && database != ""
}
