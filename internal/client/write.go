package client

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/horaedb/horaedb-client-go/config"
	"github.com/horaedb/horaedb-client-go/internal/endpoint"
	"github.com/horaedb/horaedb-client-go/internal/rpcctx"
	"github.com/horaedb/horaedb-client-go/internal/storagepb"
	"github.com/horaedb/horaedb-client-go/internal/xerrors"
	"github.com/horaedb/horaedb-client-go/log"
	"github.com/horaedb/horaedb-client-go/metrics"
	"github.com/horaedb/horaedb-client-go/model"
)

// Write sends points. In Direct mode points are split by owner endpoint and
// parts are sent concurrently. If some parts fail, response of the succeeded
// parts is returned together with *xerrors.WriteError.
func (c *Client) Write(ctx context.Context, req *model.WriteRequest) (*model.WriteResponse, error) {
	if req == nil || len(req.Points()) == 0 {
		return nil, xerrors.WithStackTrace(fmt.Errorf("%w: write has no points", ErrInvalidRequest))
	}

	database, err := c.database(ctx)
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}
	ctx = log.WithNames(rpcctx.WithDatabase(ctx, database), "client")

	switch c.config.Mode() {
	case config.Proxy:
		return c.writeProxy(ctx, database, req.Points())
	default:
		return c.writeDirect(ctx, database, req.Points())
	}
}

func (c *Client) writeProxy(ctx context.Context, database string, points []model.Point) (*model.WriteResponse, error) {
	cc, err := c.bootstrap(ctx)
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	resp, err := cc.Write(ctx, &storagepb.WriteRequest{
		Context:       storagepb.RequestContext{Database: database},
		TableRequests: toWriteTableRequests(points),
	})
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	return &model.WriteResponse{
		Success: resp.Success,
		Failed:  resp.Failed,
	}, nil
}

// maxConcurrentWrites bounds in-flight partition writes of one Write call
const maxConcurrentWrites = 16

// partition is a part of split write owned by one endpoint
type partition struct {
	endpoint endpoint.Endpoint
	tables   []string
	resp     *storagepb.WriteResponse
	err      error
}

func (c *Client) writeDirect(ctx context.Context, database string, points []model.Point) (*model.WriteResponse, error) {
	var (
		byTable, pending = groupByTable(points)
		resp             = &model.WriteResponse{}
		failures         []xerrors.WriteFailure
	)

	for attempt := 0; attempt < 2 && len(pending) > 0; attempt++ {
		routes, err := c.router.Route(ctx, pending)
		if err != nil {
			var noRoute *xerrors.NoRouteError
			switch {
			case xerrors.As(err, &noRoute):
				failures = append(failures, xerrors.WriteFailure{
					Tables: noRoute.Tables,
					Err:    err,
				})
			case attempt == 0:
				return nil, xerrors.WithStackTrace(err)
			default:
				failures = append(failures, xerrors.WriteFailure{
					Tables: pending,
					Err:    err,
				})

				continue
			}
		}

		parts := partitionByEndpoint(pending, routes)
		if err := c.writePartitions(ctx, database, byTable, parts); err != nil {
			log.Debug(ctx, c.logger, "write partitions failed",
				log.Int("attempt", attempt),
				log.Int("parts", len(parts)),
				log.Error(err),
			)
		}

		pending = nil
		for _, part := range parts {
			switch {
			case part.err == nil:
				resp.Success += part.resp.Success
				resp.Failed += part.resp.Failed
			case attempt == 0 && xerrors.IsStaleRoute(part.err):
				c.retryStale(ctx, metrics.MethodWrite, part.endpoint, part.tables, part.err)
				pending = append(pending, part.tables...)
			default:
				failures = append(failures, xerrors.WriteFailure{
					Address: part.endpoint.Address(),
					Tables:  part.tables,
					Err:     part.err,
				})
			}
		}
	}

	if len(failures) > 0 {
		return resp, xerrors.WithStackTrace(&xerrors.WriteError{Failures: failures})
	}

	return resp, nil
}

// writePartitions sends parts concurrently, results are stored into parts.
// Every part is sent even if others fail, first failure is returned.
func (c *Client) writePartitions(
	ctx context.Context,
	database string,
	byTable map[string][]model.Point,
	parts []*partition,
) error {
	var g errgroup.Group
	g.SetLimit(maxConcurrentWrites)
	for _, part := range parts {
		part := part
		g.Go(func() error {
			var points []model.Point
			for _, table := range part.tables {
				points = append(points, byTable[table]...)
			}

			cc, err := c.factory.Build(ctx, part.endpoint.Address())
			if err != nil {
				part.err = xerrors.WithStackTrace(err)

				return part.err
			}

			part.resp, part.err = cc.Write(ctx, &storagepb.WriteRequest{
				Context:       storagepb.RequestContext{Database: database},
				TableRequests: toWriteTableRequests(points),
			})

			return part.err
		})
	}

	return g.Wait()
}

// partitionByEndpoint groups routed tables by owner, unrouted tables are skipped
func partitionByEndpoint(tables []string, routes map[string]endpoint.Endpoint) []*partition {
	byEndpoint := make(map[endpoint.Endpoint]*partition)
	for _, table := range tables {
		e, has := routes[table]
		if !has {
			continue
		}
		part, has := byEndpoint[e]
		if !has {
			part = &partition{endpoint: e}
			byEndpoint[e] = part
		}
		part.tables = append(part.tables, table)
	}

	parts := make([]*partition, 0, len(byEndpoint))
	for _, part := range byEndpoint {
		parts = append(parts, part)
	}
	sort.Slice(parts, func(i, j int) bool {
		return parts[i].endpoint.Address() < parts[j].endpoint.Address()
	})

	return parts
}
