package horaedb

import (
	"context"
	"os"

	"github.com/horaedb/horaedb-client-go/config"
	"github.com/horaedb/horaedb-client-go/internal/client"
	"github.com/horaedb/horaedb-client-go/internal/rpcclient"
	"github.com/horaedb/horaedb-client-go/internal/xerrors"
	"github.com/horaedb/horaedb-client-go/log"
	"github.com/horaedb/horaedb-client-go/model"
)

// Mode selects how requests reach table owners
type Mode = config.Mode

const (
	// Direct resolves owners of tables and sends requests straight to them
	Direct = config.Direct
	// Proxy sends every request to the bootstrap endpoint
	Proxy = config.Proxy
)

// Client is a HoraeDB client. It is safe for concurrent use.
type Client struct {
	config *config.Config
	client *client.Client
}

// New creates client of the bootstrap endpoint in host:port form.
// Connections are established lazily on first use.
func New(endpoint string, opts ...Option) (_ *Client, err error) {
	var o options
	if logLevel, has := os.LookupEnv("HORAEDB_LOG_SEVERITY_LEVEL"); has {
		if l := log.FromString(logLevel); l < log.QUIET {
			o.add(config.WithLogger(log.Default(os.Stderr,
				log.WithMinLevel(l),
				log.WithColoring(),
			)))
		}
	}
	o.add(config.WithEndpoint(endpoint))

	for _, opt := range opts {
		if opt != nil {
			if err = opt(&o); err != nil {
				return nil, xerrors.WithStackTrace(err)
			}
		}
	}

	c := &Client{
		config: config.New(o.config...),
	}

	c.client, err = client.New(c.config, rpcclient.NewFactory(c.config))
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	return c, nil
}

// Endpoint returns the bootstrap endpoint
func (c *Client) Endpoint() string {
	return c.config.Endpoint()
}

func (c *Client) Mode() Mode {
	return c.client.Mode()
}

// Query executes sql. In Direct mode all tables of the request must be owned by one endpoint,
// otherwise *RoutingConflictError is returned.
func (c *Client) Query(ctx context.Context, req *model.SQLQueryRequest) (*model.SQLQueryResponse, error) {
	return c.client.Query(ctx, req)
}

// Write writes points. In Direct mode points are split by owner endpoint. When some parts fail
// the response of the applied parts is returned together with *WriteError.
func (c *Client) Write(ctx context.Context, req *model.WriteRequest) (*model.WriteResponse, error) {
	return c.client.Write(ctx, req)
}

// Close closes all connections of the client
func (c *Client) Close(ctx context.Context) error {
	return c.client.Close(ctx)
}
