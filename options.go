package horaedb

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/grpc"

	"github.com/horaedb/horaedb-client-go/config"
	"github.com/horaedb/horaedb-client-go/internal/xerrors"
	"github.com/horaedb/horaedb-client-go/log"
	"github.com/horaedb/horaedb-client-go/metrics"
)

// Option contains configuration values for Client
type Option func(o *options) error

// options collects config options while Client is built
type options struct {
	config []config.Option
}

func (o *options) add(opts ...config.Option) {
	o.config = append(o.config, opts...)
}

// RPCConfig contains transport settings
type RPCConfig = config.RPCConfig

// DefaultRPCConfig returns transport settings used when none are given
func DefaultRPCConfig() RPCConfig {
	return config.DefaultRPCConfig()
}

func WithMode(mode Mode) Option {
	return func(o *options) error {
		switch mode {
		case Direct, Proxy:
		default:
			return xerrors.WithStackTrace(fmt.Errorf("unknown mode %s", mode))
		}
		o.add(config.WithMode(mode))

		return nil
	}
}

// WithDefaultDatabase sets database for calls whose context has no database.
// See WithDatabase for per call database.
func WithDefaultDatabase(database string) Option {
	return func(o *options) error {
		o.add(config.WithDatabase(database))

		return nil
	}
}

// WithRPCConfig replaces transport settings. Zero values are replaced with defaults.
func WithRPCConfig(rpc RPCConfig) Option {
	return func(o *options) error {
		o.add(config.WithRPCConfig(rpc))

		return nil
	}
}

// WithAuthorization attaches basic authorization to every request
func WithAuthorization(username, password string) Option {
	return func(o *options) error {
		o.add(config.WithAuthorization(username, password))

		return nil
	}
}

func WithLogger(l log.Logger) Option {
	return func(o *options) error {
		o.add(config.WithLogger(l))

		return nil
	}
}

func WithMetrics(m metrics.Collector) Option {
	return func(o *options) error {
		o.add(config.WithMetrics(m))

		return nil
	}
}

func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(o *options) error {
		o.add(config.WithTLSConfig(tlsConfig))

		return nil
	}
}

// WithCertificatesFromFile enables tls with root certificates from PEM file
func WithCertificatesFromFile(caFile string) Option {
	return func(o *options) error {
		if len(caFile) > 0 && caFile[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return xerrors.WithStackTrace(err)
			}
			caFile = filepath.Join(home, caFile[1:])
		}
		bytes, err := os.ReadFile(filepath.Clean(caFile))
		if err != nil {
			return xerrors.WithStackTrace(err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(bytes) {
			return xerrors.WithStackTrace(fmt.Errorf("no certificates in %q", caFile))
		}
		o.add(config.WithTLSConfig(&tls.Config{
			MinVersion: tls.VersionTLS12,
			RootCAs:    pool,
		}))

		return nil
	}
}

// WithGrpcDialOptions appends custom dial options after the client defaults
func WithGrpcDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) error {
		o.add(config.WithGrpcDialOptions(opts...))

		return nil
	}
}
