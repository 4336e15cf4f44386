package client

import (
	"context"
	"fmt"

	"github.com/horaedb/horaedb-client-go/config"
	"github.com/horaedb/horaedb-client-go/internal/endpoint"
	"github.com/horaedb/horaedb-client-go/internal/rpcctx"
	"github.com/horaedb/horaedb-client-go/internal/storagepb"
	"github.com/horaedb/horaedb-client-go/internal/xerrors"
	"github.com/horaedb/horaedb-client-go/log"
	"github.com/horaedb/horaedb-client-go/metrics"
	"github.com/horaedb/horaedb-client-go/model"
)

func (c *Client) Query(ctx context.Context, req *model.SQLQueryRequest) (*model.SQLQueryResponse, error) {
	if req == nil || req.SQL == "" {
		return nil, xerrors.WithStackTrace(fmt.Errorf("%w: empty sql", ErrInvalidRequest))
	}
	if len(req.Tables) == 0 {
		return nil, xerrors.WithStackTrace(fmt.Errorf("%w: query has no tables", ErrInvalidRequest))
	}

	database, err := c.database(ctx)
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}
	ctx = log.WithNames(rpcctx.WithDatabase(ctx, database), "client")

	sqlReq := &storagepb.SQLQueryRequest{
		Context: storagepb.RequestContext{Database: database},
		Tables:  req.Tables,
		SQL:     req.SQL,
	}

	var resp *storagepb.SQLQueryResponse
	switch c.config.Mode() {
	case config.Proxy:
		resp, err = c.queryProxy(ctx, sqlReq)
	default:
		resp, err = c.queryDirect(ctx, sqlReq)
	}
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	return fromStorageQueryResponse(resp), nil
}

func (c *Client) queryProxy(ctx context.Context, req *storagepb.SQLQueryRequest) (*storagepb.SQLQueryResponse, error) {
	cc, err := c.bootstrap(ctx)
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	return cc.Query(ctx, req)
}

// queryDirect sends query to owner of all its tables.
// A stale route is refreshed and the query is retried once.
func (c *Client) queryDirect(ctx context.Context, req *storagepb.SQLQueryRequest) (*storagepb.SQLQueryResponse, error) {
	for attempt := 0; ; attempt++ {
		e, err := c.queryEndpoint(ctx, req.Tables)
		if err != nil {
			return nil, xerrors.WithStackTrace(err)
		}

		cc, err := c.factory.Build(ctx, e.Address())
		if err != nil {
			return nil, xerrors.WithStackTrace(err)
		}

		resp, err := cc.Query(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt == 0 && xerrors.IsStaleRoute(err) {
			c.retryStale(ctx, metrics.MethodQuery, e, req.Tables, err)

			continue
		}

		return nil, xerrors.WithStackTrace(err)
	}
}

// queryEndpoint returns the single endpoint owning all tables
func (c *Client) queryEndpoint(ctx context.Context, tables []string) (endpoint.Endpoint, error) {
	routes, err := c.router.Route(ctx, tables)
	if err != nil {
		return endpoint.Endpoint{}, xerrors.WithStackTrace(err)
	}

	var e endpoint.Endpoint
	for _, table := range tables {
		switch {
		case e.IsZero():
			e = routes[table]
		case routes[table] != e:
			conflict := &xerrors.RoutingConflictError{
				Tables: make(map[string]string, len(routes)),
			}
			for t, owner := range routes {
				conflict.Tables[t] = owner.Address()
			}

			return endpoint.Endpoint{}, xerrors.WithStackTrace(conflict)
		}
	}

	return e, nil
}
