// Package rpcclient contains clients of the storage service, one per endpoint
package rpcclient

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/horaedb/horaedb-client-go/internal/conn"
	"github.com/horaedb/horaedb-client-go/internal/rpcctx"
	"github.com/horaedb/horaedb-client-go/internal/status"
	"github.com/horaedb/horaedb-client-go/internal/storagepb"
	"github.com/horaedb/horaedb-client-go/internal/xerrors"
	"github.com/horaedb/horaedb-client-go/log"
	"github.com/horaedb/horaedb-client-go/metrics"
)

//go:generate mockgen -source client.go -destination rpcclientmock/client_mock.go -package rpcclientmock -write_package_comment=false

// Client sends requests to a single endpoint.
// A response is returned only if its header code is OK.
type Client interface {
	Query(ctx context.Context, req *storagepb.SQLQueryRequest) (*storagepb.SQLQueryResponse, error)
	Write(ctx context.Context, req *storagepb.WriteRequest) (*storagepb.WriteResponse, error)
	Route(ctx context.Context, req *storagepb.RouteRequest) (*storagepb.RouteResponse, error)
}

// Factory builds clients by endpoint address
type Factory interface {
	// Build returns client of address. Clients of one address share a connection.
	Build(ctx context.Context, address string) (Client, error)
	Close(ctx context.Context) error
}

type grpcClient struct {
	cc           conn.Conn
	queryTimeout time.Duration
	writeTimeout time.Duration
	logger       log.Logger
	metrics      metrics.Collector
}

var _ Client = (*grpcClient)(nil)

func (c *grpcClient) Query(ctx context.Context, req *storagepb.SQLQueryRequest) (*storagepb.SQLQueryResponse, error) {
	res := storagepb.NewSQLQueryResponseMessage()
	if err := c.invoke(ctx, metrics.MethodQuery, storagepb.SQLQueryFullMethodName, c.queryTimeout,
		req.ToProto(), res,
	); err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	var resp storagepb.SQLQueryResponse
	resp.FromProto(res)

	return &resp, nil
}

func (c *grpcClient) Write(ctx context.Context, req *storagepb.WriteRequest) (*storagepb.WriteResponse, error) {
	res := storagepb.NewWriteResponseMessage()
	if err := c.invoke(ctx, metrics.MethodWrite, storagepb.WriteFullMethodName, c.writeTimeout,
		req.ToProto(), res,
	); err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	var resp storagepb.WriteResponse
	resp.FromProto(res)

	return &resp, nil
}

// Route uses write timeout
func (c *grpcClient) Route(ctx context.Context, req *storagepb.RouteRequest) (*storagepb.RouteResponse, error) {
	res := storagepb.NewRouteResponseMessage()
	if err := c.invoke(ctx, metrics.MethodRoute, storagepb.RouteFullMethodName, c.writeTimeout,
		req.ToProto(), res,
	); err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	var resp storagepb.RouteResponse
	resp.FromProto(res)

	return &resp, nil
}

// invoke sends req and decodes res. Non-OK header is converted into ServerError.
func (c *grpcClient) invoke(
	ctx context.Context,
	method, fullMethod string,
	defaultTimeout time.Duration,
	req, res *dynamicpb.Message,
) (err error) {
	timeout := defaultTimeout
	if d, ok := rpcctx.Timeout(ctx); ok {
		timeout = d
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	c.metrics.IncCall(method)
	start := time.Now()
	defer func() {
		c.metrics.ObserveCallDuration(method, time.Since(start))
		if err != nil {
			c.metrics.IncCallError(method, errorKind(err))
		}
	}()

	if err = c.cc.Invoke(ctx, fullMethod, req, res); err != nil {
		return xerrors.WithStackTrace(err)
	}

	if h := storagepb.Header(res); h != nil && !status.IsOK(h.Code) {
		log.Debug(log.WithNames(ctx, "rpc"), c.logger, "server error",
			log.String("method", method),
			log.String("address", c.cc.Endpoint().Address()),
			log.Int64("code", int64(h.Code)),
			log.String("message", h.Error),
		)

		return xerrors.WithStackTrace(xerrors.Server(h.Code, h.Error))
	}

	return nil
}

func errorKind(err error) string {
	switch {
	case xerrors.IsStaleRoute(err):
		return metrics.ErrorKindStaleRoute
	case xerrors.IsServerError(err):
		return metrics.ErrorKindServer
	case xerrors.IsTransportError(err):
		return metrics.ErrorKindTransport
	default:
		return metrics.ErrorKindOther
	}
}
