package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/horaedb/horaedb-client-go/config"
	"github.com/horaedb/horaedb-client-go/internal/endpoint"
	"github.com/horaedb/horaedb-client-go/internal/router"
	"github.com/horaedb/horaedb-client-go/internal/rpcclient"
	"github.com/horaedb/horaedb-client-go/internal/rpcctx"
	"github.com/horaedb/horaedb-client-go/internal/xerrors"
	"github.com/horaedb/horaedb-client-go/log"
	"github.com/horaedb/horaedb-client-go/metrics"
)

var (
	// ErrNoDatabase is returned when neither call context nor config define database
	ErrNoDatabase = errors.New("database is not specified")

	// ErrInvalidRequest is returned for requests which cannot be sent at all
	ErrInvalidRequest = errors.New("invalid request")
)

// Client sends requests in Direct or Proxy mode.
// Direct mode resolves owner of every table with router,
// Proxy mode sends everything to the bootstrap endpoint.
type Client struct {
	config  *config.Config
	factory rpcclient.Factory
	router  *router.Router
	logger  log.Logger
	metrics metrics.Collector
}

func New(cfg *config.Config, factory rpcclient.Factory) (*Client, error) {
	if _, err := endpoint.Parse(cfg.Endpoint()); err != nil {
		return nil, xerrors.WithStackTrace(xerrors.Connect(cfg.Endpoint(), err))
	}

	c := &Client{
		config:  cfg,
		factory: factory,
		logger:  cfg.Logger(),
		metrics: cfg.Metrics(),
	}

	switch cfg.Mode() {
	case config.Direct:
		c.router = router.New(cfg.Endpoint(), factory,
			router.WithLogger(cfg.Logger()),
			router.WithMetrics(cfg.Metrics()),
		)
	case config.Proxy:
	default:
		return nil, xerrors.WithStackTrace(fmt.Errorf("unknown mode %s", cfg.Mode()))
	}

	return c, nil
}

func (c *Client) Mode() config.Mode {
	return c.config.Mode()
}

// database returns database of the call context, falling back to configured one
func (c *Client) database(ctx context.Context) (string, error) {
	if database, ok := rpcctx.Database(ctx); ok {
		return database, nil
	}
	if database := c.config.Database(); database != "" {
		return database, nil
	}

	return "", xerrors.WithStackTrace(ErrNoDatabase)
}

// bootstrap returns client of the configured endpoint
func (c *Client) bootstrap(ctx context.Context) (rpcclient.Client, error) {
	cc, err := c.factory.Build(ctx, c.config.Endpoint())
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	return cc, nil
}

// retryStale evicts routes pointing to e after a stale route failure
func (c *Client) retryStale(ctx context.Context, method string, e endpoint.Endpoint, tables []string, cause error) {
	for _, table := range tables {
		c.router.EvictIfMatch(ctx, table, e)
	}
	c.metrics.IncRetry(method)
	log.Info(ctx, c.logger, "stale route, retrying",
		log.String("method", method),
		log.String("address", e.Address()),
		log.Strings("tables", tables),
		log.Error(cause),
	)
}

func (c *Client) Close(ctx context.Context) error {
	log.Info(log.WithNames(ctx, "client"), c.logger, "close",
		log.String("endpoint", c.config.Endpoint()),
	)

	if err := c.factory.Close(ctx); err != nil {
		return xerrors.WithStackTrace(err)
	}

	return nil
}
