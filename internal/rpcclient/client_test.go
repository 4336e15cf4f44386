package rpcclient

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/horaedb/horaedb-client-go/config"
	"github.com/horaedb/horaedb-client-go/internal/rpcctx"
	"github.com/horaedb/horaedb-client-go/internal/status"
	"github.com/horaedb/horaedb-client-go/internal/storagepb"
	"github.com/horaedb/horaedb-client-go/internal/xerrors"
	"github.com/horaedb/horaedb-client-go/internal/xtest"
	"github.com/horaedb/horaedb-client-go/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newFactory(t *testing.T, opts ...config.Option) Factory {
	f := NewFactory(config.New(opts...))
	t.Cleanup(func() {
		require.NoError(t, f.Close(context.Background()))
	})

	return f
}

// block waits for ctx cancellation or one second
func block(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
	}
}

func TestClientQuery(t *testing.T) {
	ctx := xtest.Context(t)
	server := xtest.NewStorageServer(t)
	server.SetQueryHandler(func(_ context.Context, req *storagepb.SQLQueryRequest) (*storagepb.SQLQueryResponse, error) {
		require.Equal(t, "public", req.Context.Database)
		require.Equal(t, []string{"t1"}, req.Tables)
		require.Equal(t, "SELECT * FROM t1", req.SQL)

		return &storagepb.SQLQueryResponse{
			Header: &storagepb.ResponseHeader{Code: status.OK},
			Arrow:  &storagepb.ArrowPayload{RecordBatches: [][]byte{{1, 2}}},
		}, nil
	})

	c, err := newFactory(t).Build(ctx, server.Address())
	require.NoError(t, err)

	resp, err := c.Query(ctx, &storagepb.SQLQueryRequest{
		Context: storagepb.RequestContext{Database: "public"},
		Tables:  []string{"t1"},
		SQL:     "SELECT * FROM t1",
	})
	require.NoError(t, err)
	require.Equal(t, [][]byte{{1, 2}}, resp.Arrow.RecordBatches)
}

func TestClientWrite(t *testing.T) {
	ctx := xtest.Context(t)
	server := xtest.NewStorageServer(t)

	c, err := newFactory(t).Build(ctx, server.Address())
	require.NoError(t, err)

	resp, err := c.Write(ctx, &storagepb.WriteRequest{
		TableRequests: []storagepb.WriteTableRequest{{
			Table:      "t1",
			FieldNames: []string{"value"},
			Entries: []storagepb.WriteSeriesEntry{{
				FieldGroups: []storagepb.FieldGroup{
					{Timestamp: 1, Fields: []storagepb.Field{{Value: storagepb.Value{Kind: storagepb.KindFloat64, Float: 1}}}},
					{Timestamp: 2, Fields: []storagepb.Field{{Value: storagepb.Value{Kind: storagepb.KindFloat64, Float: 2}}}},
				},
			}},
		}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, resp.Success)
	require.EqualValues(t, 0, resp.Failed)
}

func TestClientRoute(t *testing.T) {
	ctx := xtest.Context(t)
	server := xtest.NewStorageServer(t)
	server.SetRouteHandler(xtest.RouteTo(map[string]string{"t1": "10.0.0.1:8831"}))

	c, err := newFactory(t).Build(ctx, server.Address())
	require.NoError(t, err)

	resp, err := c.Route(ctx, &storagepb.RouteRequest{Tables: []string{"t1", "t2"}})
	require.NoError(t, err)
	require.Equal(t, []storagepb.Route{
		{Table: "t1", Endpoint: &storagepb.Endpoint{IP: "10.0.0.1", Port: 8831}},
	}, resp.Routes)
}

func TestClientServerError(t *testing.T) {
	for _, tt := range []struct {
		name       string
		header     *storagepb.ResponseHeader
		err        bool
		staleRoute bool
	}{
		{
			name:   "OK",
			header: &storagepb.ResponseHeader{Code: status.OK},
		},
		{
			name: "NoHeader",
		},
		{
			name:       "InvalidRoute",
			header:     &storagepb.ResponseHeader{Code: status.InvalidRoute, Error: "route moved"},
			err:        true,
			staleRoute: true,
		},
		{
			name:       "TableNotFound",
			header:     &storagepb.ResponseHeader{Code: status.InternalError, Error: "Table Not Found: t1"},
			err:        true,
			staleRoute: true,
		},
		{
			name:   "Internal",
			header: &storagepb.ResponseHeader{Code: status.InternalError, Error: "disk full"},
			err:    true,
		},
		{
			name:   "Unauthorized",
			header: &storagepb.ResponseHeader{Code: status.Unauthorized, Error: "denied"},
			err:    true,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			ctx := xtest.Context(t)
			server := xtest.NewStorageServer(t)
			server.SetQueryHandler(func(context.Context, *storagepb.SQLQueryRequest) (*storagepb.SQLQueryResponse, error) {
				return &storagepb.SQLQueryResponse{Header: tt.header, AffectedRows: 3}, nil
			})

			c, err := newFactory(t).Build(ctx, server.Address())
			require.NoError(t, err)

			resp, err := c.Query(ctx, &storagepb.SQLQueryRequest{Tables: []string{"t1"}, SQL: "DELETE"})
			if !tt.err {
				require.NoError(t, err)
				require.EqualValues(t, 3, resp.AffectedRows)

				return
			}

			require.Error(t, err)
			require.Nil(t, resp)
			require.True(t, xerrors.IsServerError(err, tt.header.Code))
			require.Equal(t, tt.staleRoute, xerrors.IsStaleRoute(err))

			var se *xerrors.ServerError
			require.ErrorAs(t, err, &se)
			require.Equal(t, tt.header.Error, se.Message)
		})
	}
}

func TestClientTimeouts(t *testing.T) {
	t.Run("DefaultQueryTimeout", func(t *testing.T) {
		ctx := xtest.Context(t)
		server := xtest.NewStorageServer(t)
		server.SetQueryHandler(func(ctx context.Context, _ *storagepb.SQLQueryRequest) (*storagepb.SQLQueryResponse, error) {
			block(ctx)

			return &storagepb.SQLQueryResponse{}, nil
		})

		c, err := newFactory(t, config.WithRPCConfig(config.RPCConfig{
			DefaultQueryTimeout: 50 * time.Millisecond,
		})).Build(ctx, server.Address())
		require.NoError(t, err)

		_, err = c.Query(ctx, &storagepb.SQLQueryRequest{})
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.True(t, xerrors.IsTransportError(err))
	})
	t.Run("RouteUsesWriteTimeout", func(t *testing.T) {
		ctx := xtest.Context(t)
		server := xtest.NewStorageServer(t)
		server.SetRouteHandler(func(ctx context.Context, _ *storagepb.RouteRequest) (*storagepb.RouteResponse, error) {
			block(ctx)

			return &storagepb.RouteResponse{}, nil
		})

		c, err := newFactory(t, config.WithRPCConfig(config.RPCConfig{
			DefaultWriteTimeout: 50 * time.Millisecond,
			DefaultQueryTimeout: time.Hour,
		})).Build(ctx, server.Address())
		require.NoError(t, err)

		start := time.Now()
		_, err = c.Route(ctx, &storagepb.RouteRequest{Tables: []string{"t1"}})
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Less(t, time.Since(start), 900*time.Millisecond)
	})
	t.Run("CallerTimeoutOverridesDefault", func(t *testing.T) {
		ctx := xtest.Context(t)
		server := xtest.NewStorageServer(t)
		server.SetWriteHandler(func(ctx context.Context, _ *storagepb.WriteRequest) (*storagepb.WriteResponse, error) {
			select {
			case <-ctx.Done():
			case <-time.After(100 * time.Millisecond):
			}

			return &storagepb.WriteResponse{Success: 1}, nil
		})

		c, err := newFactory(t, config.WithRPCConfig(config.RPCConfig{
			DefaultWriteTimeout: 10 * time.Millisecond,
		})).Build(ctx, server.Address())
		require.NoError(t, err)

		_, err = c.Write(ctx, &storagepb.WriteRequest{})
		require.ErrorIs(t, err, context.DeadlineExceeded)

		resp, err := c.Write(rpcctx.WithTimeout(ctx, 5*time.Second), &storagepb.WriteRequest{})
		require.NoError(t, err)
		require.EqualValues(t, 1, resp.Success)
	})
}

func TestFactoryBuild(t *testing.T) {
	ctx := xtest.Context(t)
	server := xtest.NewStorageServer(t)
	m := metrics.NewVictoria()
	f := newFactory(t, config.WithMetrics(m))

	first, err := f.Build(ctx, server.Address())
	require.NoError(t, err)
	second, err := f.Build(ctx, server.Address())
	require.NoError(t, err)
	require.Same(t, first, second)
	require.EqualValues(t, 1, server.Connections())

	_, err = f.Build(ctx, "http://"+server.Address())
	require.True(t, xerrors.IsConnectError(err))

	_, err = first.Route(ctx, &storagepb.RouteRequest{})
	require.NoError(t, err)

	var buf bytes.Buffer
	m.WritePrometheus(&buf)
	require.Contains(t, buf.String(), `horaedb_client_calls_total{method="route"} 1`)
	require.Contains(t, buf.String(), `horaedb_client_dials_total 1`)
}

func TestFactoryClose(t *testing.T) {
	ctx := xtest.Context(t)
	server := xtest.NewStorageServer(t)
	f := NewFactory(config.New())

	c, err := f.Build(ctx, server.Address())
	require.NoError(t, err)
	require.NoError(t, f.Close(ctx))

	_, err = c.Route(ctx, &storagepb.RouteRequest{})
	require.True(t, xerrors.IsTransportError(err))

	_, err = f.Build(ctx, server.Address())
	require.True(t, xerrors.IsConnectError(err))
}
