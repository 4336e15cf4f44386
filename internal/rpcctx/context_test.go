package rpcctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeout(t *testing.T) {
	ctx := context.Background()

	_, ok := Timeout(ctx)
	require.False(t, ok)

	d, ok := Timeout(WithTimeout(ctx, time.Second))
	require.True(t, ok)
	require.Equal(t, time.Second, d)

	d, ok = Timeout(WithTimeout(WithTimeout(ctx, time.Second), time.Minute))
	require.True(t, ok)
	require.Equal(t, time.Minute, d)

	_, ok = Timeout(WithTimeout(ctx, 0))
	require.False(t, ok)
}

func TestDatabase(t *testing.T) {
	ctx := context.Background()

	_, ok := Database(ctx)
	require.False(t, ok)

	db, ok := Database(WithDatabase(ctx, "public"))
	require.True(t, ok)
	require.Equal(t, "public", db)

	_, ok = Database(WithDatabase(ctx, ""))
	require.False(t, ok)
}
