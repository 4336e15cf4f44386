package conn

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/singleflight"

	"github.com/horaedb/horaedb-client-go/internal/endpoint"
	"github.com/horaedb/horaedb-client-go/internal/xerrors"
	"github.com/horaedb/horaedb-client-go/log"
)

var errClosedPool = errors.New("connection pool closed")

// Pool keeps one connection per address
type Pool struct {
	config Config
	conns  *xsync.MapOf[string, *conn]
	dials  singleflight.Group
	closed atomic.Bool
}

func NewPool(config Config) *Pool {
	return &Pool{
		config: config,
		conns:  xsync.NewMapOf[string, *conn](),
	}
}

// Get returns connection to address, dialing it on first use.
// Concurrent callers share a single dial. Failed dial is not cached.
func (p *Pool) Get(ctx context.Context, address string) (Conn, error) {
	if p.closed.Load() {
		return nil, xerrors.WithStackTrace(xerrors.Connect(address, errClosedPool))
	}

	e, err := endpoint.Parse(address)
	if err != nil {
		return nil, xerrors.WithStackTrace(xerrors.Connect(address, err))
	}

	address = e.Address()
	if cc, has := p.conns.Load(address); has {
		return cc, nil
	}

	ch := p.dials.DoChan(address, func() (interface{}, error) {
		if cc, has := p.conns.Load(address); has {
			return cc, nil
		}

		return p.dial(context.WithoutCancel(ctx), e)
	})

	select {
	case <-ctx.Done():
		return nil, xerrors.WithStackTrace(xerrors.Connect(address, ctx.Err()))
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val.(*conn), nil //nolint:forcetypeassert
	}
}

func (p *Pool) dial(ctx context.Context, e endpoint.Endpoint) (*conn, error) {
	ctx = log.WithNames(ctx, "conn")
	l := p.config.Logger()

	log.Debug(ctx, l, "dial", log.String("address", e.Address()))
	p.config.Metrics().IncDial()

	cc, err := dial(ctx, e, p.config, withOnClose(p.remove))
	if err != nil {
		p.config.Metrics().IncDialError()
		log.Warn(ctx, l, "dial failed",
			log.String("address", e.Address()),
			log.Error(err),
		)

		return nil, err
	}

	p.conns.Store(e.Address(), cc)

	if p.closed.Load() {
		_ = cc.Close(ctx)

		return nil, xerrors.WithStackTrace(xerrors.Connect(e.Address(), errClosedPool))
	}

	log.Info(ctx, l, "connected", log.String("address", e.Address()))

	return cc, nil
}

func (p *Pool) remove(c *conn) {
	p.conns.Compute(c.Address(), func(old *conn, loaded bool) (*conn, bool) {
		return old, !loaded || old == c
	})
}

// Len returns number of established connections
func (p *Pool) Len() int {
	return p.conns.Size()
}

// Close closes all connections. Pool cannot be used after Close.
func (p *Pool) Close(ctx context.Context) error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	var issues []error
	p.conns.Range(func(_ string, cc *conn) bool {
		if err := cc.Close(ctx); err != nil {
			issues = append(issues, err)
		}

		return true
	})

	if err := xerrors.Join(issues...); err != nil {
		return xerrors.WithStackTrace(err)
	}

	return nil
}
