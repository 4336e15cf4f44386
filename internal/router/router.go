package router

import (
	"context"
	"slices"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/horaedb/horaedb-client-go/internal/endpoint"
	"github.com/horaedb/horaedb-client-go/internal/rpcclient"
	"github.com/horaedb/horaedb-client-go/internal/rpcctx"
	"github.com/horaedb/horaedb-client-go/internal/storagepb"
	"github.com/horaedb/horaedb-client-go/internal/xerrors"
	"github.com/horaedb/horaedb-client-go/log"
	"github.com/horaedb/horaedb-client-go/metrics"
)

// Router resolves tables to endpoints of their owners.
// Resolved routes are cached until evicted, there is no time based expiration.
type Router struct {
	bootstrap string
	factory   rpcclient.Factory
	cache     *xsync.MapOf[string, endpoint.Endpoint]
	logger    log.Logger
	metrics   metrics.Collector
}

type Option func(r *Router)

func WithLogger(l log.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

func WithMetrics(m metrics.Collector) Option {
	return func(r *Router) {
		if m != nil {
			r.metrics = m
		}
	}
}

// New returns router which asks bootstrap endpoint about unknown tables
func New(bootstrap string, factory rpcclient.Factory, opts ...Option) *Router {
	r := &Router{
		bootstrap: bootstrap,
		factory:   factory,
		cache:     xsync.NewMapOf[string, endpoint.Endpoint](),
		logger:    log.Nop(),
		metrics:   metrics.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// Route returns owner endpoint of every table.
// Tables missing in cache are resolved with one route call carrying database from ctx.
// If some tables remain unresolved, resolved part is returned together with NoRouteError.
func (r *Router) Route(ctx context.Context, tables []string) (map[string]endpoint.Endpoint, error) {
	var (
		routes = make(map[string]endpoint.Endpoint, len(tables))
		misses []string
	)
	for _, table := range tables {
		if _, has := routes[table]; has {
			continue
		}
		if e, has := r.cache.Load(table); has {
			routes[table] = e

			continue
		}
		if !slices.Contains(misses, table) {
			misses = append(misses, table)
		}
	}

	r.metrics.IncRouteCacheHit(len(routes))
	if len(misses) == 0 {
		return routes, nil
	}
	r.metrics.IncRouteCacheMiss(len(misses))

	if err := r.refresh(ctx, misses, routes); err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	var unresolved []string
	for _, table := range misses {
		if _, has := routes[table]; !has {
			unresolved = append(unresolved, table)
		}
	}
	if len(unresolved) > 0 {
		return routes, xerrors.WithStackTrace(&xerrors.NoRouteError{Tables: unresolved})
	}

	return routes, nil
}

// refresh resolves tables with bootstrap endpoint and stores result both in cache and routes
func (r *Router) refresh(ctx context.Context, tables []string, routes map[string]endpoint.Endpoint) error {
	c, err := r.factory.Build(ctx, r.bootstrap)
	if err != nil {
		return xerrors.WithStackTrace(err)
	}

	database, _ := rpcctx.Database(ctx)
	resp, err := c.Route(ctx, &storagepb.RouteRequest{
		Context: storagepb.RequestContext{Database: database},
		Tables:  tables,
	})
	if err != nil {
		return xerrors.WithStackTrace(err)
	}

	for _, route := range resp.Routes {
		if !slices.Contains(tables, route.Table) || route.Endpoint == nil {
			continue
		}
		e, ok := endpoint.FromRoute(route.Endpoint.IP, route.Endpoint.Port)
		if !ok {
			continue
		}
		r.cache.Store(route.Table, e)
		routes[route.Table] = e
	}

	log.Debug(log.WithNames(ctx, "router"), r.logger, "routes refreshed",
		log.Strings("tables", tables),
		log.Int("resolved", len(resp.Routes)),
	)

	return nil
}

// EvictIfMatch drops cached route of table only if it still points to e.
// Route refreshed concurrently by another caller is kept.
func (r *Router) EvictIfMatch(ctx context.Context, table string, e endpoint.Endpoint) bool {
	var evicted bool
	r.cache.Compute(table, func(old endpoint.Endpoint, loaded bool) (endpoint.Endpoint, bool) {
		evicted = loaded && old == e

		return old, !loaded || evicted
	})
	if !evicted {
		return false
	}

	r.metrics.IncRouteEviction(1)
	log.Debug(log.WithNames(ctx, "router"), r.logger, "route evicted",
		log.String("table", table),
		log.String("address", e.Address()),
	)

	return true
}

// Len returns number of cached routes
func (r *Router) Len() int {
	return r.cache.Size()
}
