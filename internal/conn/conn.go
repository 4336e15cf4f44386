package conn

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"

	"github.com/horaedb/horaedb-client-go/internal/endpoint"
	"github.com/horaedb/horaedb-client-go/internal/meta"
	"github.com/horaedb/horaedb-client-go/internal/xerrors"
	"github.com/horaedb/horaedb-client-go/log"
)

// errClosedConnection specified error when connection are closed early
var errClosedConnection = errors.New("connection closed early")

// Conn is a multiplexed connection to one endpoint. It is safe for concurrent use.
type Conn interface {
	Invoke(ctx context.Context, method string, req, res any, opts ...grpc.CallOption) error

	Endpoint() endpoint.Endpoint

	// Ready reports whether underlying transport is connected
	Ready() bool

	Close(ctx context.Context) error
}

type conn struct {
	mtx      sync.RWMutex
	endpoint endpoint.Endpoint // ro access
	meta     *meta.Meta        // ro access
	logger   log.Logger        // ro access
	grpcConn *grpc.ClientConn
	closed   bool
	onClose  []func(*conn)
}

func (c *conn) Address() string {
	return c.endpoint.Address()
}

func (c *conn) Endpoint() endpoint.Endpoint {
	return c.endpoint
}

func (c *conn) Ready() bool {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	return !c.closed && isAvailable(c.grpcConn)
}

func (c *conn) Invoke(ctx context.Context, method string, req, res any, opts ...grpc.CallOption) error {
	c.mtx.RLock()
	cc, closed := c.grpcConn, c.closed
	c.mtx.RUnlock()

	if closed {
		return xerrors.WithStackTrace(xerrors.Transport(errClosedConnection,
			xerrors.WithAddress(c.Address()),
		))
	}

	return invoke(ctx, method, req, res, cc, c.meta, c.logger, c.Address(), opts...)
}

func invoke(
	ctx context.Context,
	method string,
	req, res any,
	cc grpc.ClientConnInterface,
	md *meta.Meta,
	l log.Logger,
	address string,
	opts ...grpc.CallOption,
) error {
	ctx, traceID, err := md.Context(ctx)
	if err != nil {
		return xerrors.WithStackTrace(err)
	}

	err = cc.Invoke(ctx, method, req, res, opts...)
	if err != nil {
		log.Debug(log.WithNames(ctx, "conn"), l, "invoke failed",
			log.String("method", method),
			log.String("address", address),
			log.String("trace_id", traceID),
			log.Error(err),
		)

		return xerrors.WithStackTrace(xerrors.Transport(err,
			xerrors.WithAddress(address),
		))
	}

	return nil
}

func (c *conn) Close(ctx context.Context) (err error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.closed {
		return nil
	}

	defer func() {
		c.closed = true
		for _, onClose := range c.onClose {
			onClose(c)
		}
	}()

	log.Debug(log.WithNames(ctx, "conn"), c.logger, "close",
		log.String("address", c.Address()),
	)

	if c.grpcConn == nil {
		return nil
	}

	if err = c.grpcConn.Close(); err != nil {
		return xerrors.WithStackTrace(xerrors.Transport(err,
			xerrors.WithAddress(c.Address()),
		))
	}

	return nil
}

func isAvailable(raw *grpc.ClientConn) bool {
	return raw != nil && raw.GetState() == connectivity.Ready
}

type option func(c *conn)

func withOnClose(onClose func(*conn)) option {
	return func(c *conn) {
		if onClose != nil {
			c.onClose = append(c.onClose, onClose)
		}
	}
}

// dial establishes connection and blocks until it is ready or connectTimeout exceeds
func dial(ctx context.Context, e endpoint.Endpoint, config Config, opts ...option) (_ *conn, err error) {
	cc, err := grpc.NewClient(e.Target(), config.GrpcDialOptions()...)
	if err != nil {
		return nil, xerrors.WithStackTrace(xerrors.Connect(e.Address(), err))
	}

	if connectTimeout := config.ConnectTimeout(); connectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, connectTimeout)
		defer cancel()
	}

	if err = waitReady(ctx, cc); err != nil {
		_ = cc.Close()

		return nil, xerrors.WithStackTrace(xerrors.Connect(e.Address(), err))
	}

	c := &conn{
		endpoint: e,
		meta:     config.Meta(),
		logger:   config.Logger(),
		grpcConn: cc,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c, nil
}

func waitReady(ctx context.Context, cc *grpc.ClientConn) error {
	cc.Connect()
	for {
		state := cc.GetState()
		switch state {
		case connectivity.Ready:
			return nil
		case connectivity.TransientFailure, connectivity.Shutdown:
			return fmt.Errorf("connection state is %s", state)
		}
		if !cc.WaitForStateChange(ctx, state) {
			return ctx.Err()
		}
	}
}
