package horaedb

import (
	"context"
	"time"

	"github.com/horaedb/horaedb-client-go/internal/rpcctx"
)

// WithDatabase returns a copy of parent context with database of the call.
// It overrides database configured with WithDefaultDatabase.
func WithDatabase(ctx context.Context, database string) context.Context {
	return rpcctx.WithDatabase(ctx, database)
}

// WithTimeout returns a copy of parent context with timeout of every rpc of the call.
// It overrides default query and write timeouts of RPCConfig.
func WithTimeout(ctx context.Context, timeout time.Duration) context.Context {
	return rpcctx.WithTimeout(ctx, timeout)
}
