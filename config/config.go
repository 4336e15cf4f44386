package config

import (
	"crypto/tls"
	"time"

	"google.golang.org/grpc"

	"github.com/horaedb/horaedb-client-go/internal/meta"
	"github.com/horaedb/horaedb-client-go/log"
	"github.com/horaedb/horaedb-client-go/metrics"
)

// Config contains client configuration. It is immutable after New.
type Config struct {
	endpoint    string
	database    string
	mode        Mode
	rpc         RPCConfig
	auth        *Authorization
	tlsConfig   *tls.Config
	grpcOptions []grpc.DialOption
	logger      log.Logger
	metrics     metrics.Collector
	meta        *meta.Meta
}

// Endpoint is the bootstrap endpoint in host:port form
func (c *Config) Endpoint() string {
	return c.endpoint
}

// Database is the default database, used when a call context has none
func (c *Config) Database() string {
	return c.database
}

func (c *Config) Mode() Mode {
	return c.mode
}

func (c *Config) RPC() RPCConfig {
	return c.rpc
}

// Authorization returns nil if authorization is not configured
func (c *Config) Authorization() *Authorization {
	return c.auth
}

// ConnectTimeout bounds a single blocking dial
func (c *Config) ConnectTimeout() time.Duration {
	return c.rpc.ConnectTimeout
}

// Meta contains request metadata derived from authorization settings
func (c *Config) Meta() *meta.Meta {
	return c.meta
}

func (c *Config) TLSConfig() *tls.Config {
	return c.tlsConfig
}

func (c *Config) Logger() log.Logger {
	return c.logger
}

func (c *Config) Metrics() metrics.Collector {
	return c.metrics
}

type Option func(c *Config)

func WithEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.endpoint = endpoint
	}
}

func WithDatabase(database string) Option {
	return func(c *Config) {
		c.database = database
	}
}

func WithMode(mode Mode) Option {
	return func(c *Config) {
		c.mode = mode
	}
}

// WithRPCConfig replaces transport settings. Zero durations and sizes are
// replaced with defaults.
func WithRPCConfig(rpc RPCConfig) Option {
	return func(c *Config) {
		c.rpc = rpc.withDefaults()
	}
}

func WithAuthorization(username, password string) Option {
	return func(c *Config) {
		c.auth = &Authorization{
			Username: username,
			Password: password,
		}
	}
}

// WithTLSConfig enables tls transport credentials
func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(c *Config) {
		c.tlsConfig = tlsConfig
	}
}

// WithGrpcDialOptions appends custom dial options after the client defaults
func WithGrpcDialOptions(opts ...grpc.DialOption) Option {
	return func(c *Config) {
		c.grpcOptions = append(c.grpcOptions, opts...)
	}
}

func WithLogger(l log.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMetrics(m metrics.Collector) Option {
	return func(c *Config) {
		if m != nil {
			c.metrics = m
		}
	}
}

func New(opts ...Option) *Config {
	c := &Config{
		mode:    Direct,
		rpc:     DefaultRPCConfig(),
		logger:  log.Nop(),
		metrics: metrics.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.auth != nil {
		c.meta = meta.New(meta.WithBasicAuth(c.auth.Username, c.auth.Password))
	} else {
		c.meta = meta.New()
	}

	return c
}
