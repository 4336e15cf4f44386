package config

import (
	"crypto/tls"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/horaedb/horaedb-client-go/log"
	"github.com/horaedb/horaedb-client-go/metrics"
)

func TestDefaults(t *testing.T) {
	c := New(WithEndpoint("127.0.0.1:8831"))

	require.Equal(t, "127.0.0.1:8831", c.Endpoint())
	require.Equal(t, Direct, c.Mode())
	require.Empty(t, c.Database())
	require.Nil(t, c.Authorization())
	require.Nil(t, c.TLSConfig())
	require.NotNil(t, c.Logger())
	require.NotNil(t, c.Metrics())
	require.Equal(t, 3*time.Second, c.ConnectTimeout())
	_, ok := c.Meta().Authorization()
	require.False(t, ok)

	rpc := c.RPC()
	require.Equal(t, 3*time.Second, rpc.ConnectTimeout)
	require.True(t, rpc.KeepAliveWhileIdle)
	require.Equal(t, 600*time.Second, rpc.KeepAliveInterval)
	require.Equal(t, 3*time.Second, rpc.KeepAliveTimeout)
	require.Equal(t, 5*time.Second, rpc.DefaultWriteTimeout)
	require.Equal(t, 60*time.Second, rpc.DefaultQueryTimeout)
	require.Equal(t, 20*1024*1024, rpc.MaxSendMsgSize)
	require.Equal(t, 1024*1024*1024, rpc.MaxRecvMsgSize)
}

func TestOptions(t *testing.T) {
	l := log.Nop()
	m := metrics.NewVictoria()
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}

	c := New(
		WithMode(Proxy),
		WithDatabase("public"),
		WithAuthorization("user", "pass"),
		WithTLSConfig(tlsConfig),
		WithLogger(l),
		WithMetrics(m),
		WithLogger(nil),
		WithMetrics(nil),
		nil,
	)

	require.Equal(t, Proxy, c.Mode())
	require.Equal(t, "public", c.Database())
	require.Equal(t, &Authorization{Username: "user", Password: "pass"}, c.Authorization())
	auth, ok := c.Meta().Authorization()
	require.True(t, ok)
	require.Equal(t, "Basic dXNlcjpwYXNz", auth)
	require.Same(t, tlsConfig, c.TLSConfig())
	require.Equal(t, l, c.Logger())
	require.Same(t, m, c.Metrics())
}

func TestRPCConfigDefaultsFilled(t *testing.T) {
	c := New(WithRPCConfig(RPCConfig{
		DefaultQueryTimeout: time.Second,
	}))

	rpc := c.RPC()
	require.Equal(t, time.Second, rpc.DefaultQueryTimeout)
	require.Equal(t, DefaultWriteTimeout, rpc.DefaultWriteTimeout)
	require.Equal(t, DefaultConnectTimeout, rpc.ConnectTimeout)
	require.False(t, rpc.KeepAliveWhileIdle)
}

func TestGrpcDialOptions(t *testing.T) {
	custom := grpc.WithUserAgent("test")

	withKeepalive := New(WithGrpcDialOptions(custom))
	withoutKeepalive := New(
		WithRPCConfig(RPCConfig{KeepAliveWhileIdle: false}),
		WithGrpcDialOptions(custom),
	)

	// call options, keepalive, credentials, custom
	require.Len(t, withKeepalive.GrpcDialOptions(), 4)
	// call options, credentials, custom
	require.Len(t, withoutKeepalive.GrpcDialOptions(), 3)

	params := withKeepalive.KeepaliveParams()
	require.Equal(t, DefaultKeepAliveInterval, params.Time)
	require.Equal(t, DefaultKeepAliveTimeout, params.Timeout)
	require.True(t, params.PermitWithoutStream)
}

func TestModeString(t *testing.T) {
	require.Equal(t, "direct", Direct.String())
	require.Equal(t, "proxy", Proxy.String())
	require.Equal(t, "mode(7)", Mode(7).String())
}
