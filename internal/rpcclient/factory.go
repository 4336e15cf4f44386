package rpcclient

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/horaedb/horaedb-client-go/config"
	"github.com/horaedb/horaedb-client-go/internal/conn"
	"github.com/horaedb/horaedb-client-go/internal/xerrors"
)

type factory struct {
	pool    *conn.Pool
	config  *config.Config
	clients *xsync.MapOf[string, *grpcClient]
}

// NewFactory returns factory of grpc clients over a shared connection pool
func NewFactory(config *config.Config) Factory {
	return &factory{
		pool:    conn.NewPool(config),
		config:  config,
		clients: xsync.NewMapOf[string, *grpcClient](),
	}
}

func (f *factory) Build(ctx context.Context, address string) (Client, error) {
	cc, err := f.pool.Get(ctx, address)
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	c, _ := f.clients.Compute(cc.Endpoint().Address(),
		func(old *grpcClient, loaded bool) (*grpcClient, bool) {
			if loaded && old.cc == cc {
				return old, false
			}

			return f.newClient(cc), false
		},
	)

	return c, nil
}

func (f *factory) newClient(cc conn.Conn) *grpcClient {
	rpc := f.config.RPC()

	return &grpcClient{
		cc:           cc,
		queryTimeout: rpc.DefaultQueryTimeout,
		writeTimeout: rpc.DefaultWriteTimeout,
		logger:       f.config.Logger(),
		metrics:      f.config.Metrics(),
	}
}

func (f *factory) Close(ctx context.Context) error {
	f.clients.Clear()

	return f.pool.Close(ctx)
}
