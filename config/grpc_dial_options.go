package config

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

// GrpcDialOptions returns dial options for an endpoint connection.
// Custom options from WithGrpcDialOptions are appended last.
func (c *Config) GrpcDialOptions() (opts []grpc.DialOption) {
	opts = append(opts,
		grpc.WithDefaultCallOptions(
			grpc.MaxCallSendMsgSize(c.rpc.MaxSendMsgSize),
			grpc.MaxCallRecvMsgSize(c.rpc.MaxRecvMsgSize),
		),
	)
	if c.rpc.KeepAliveWhileIdle {
		opts = append(opts, grpc.WithKeepaliveParams(c.KeepaliveParams()))
	}
	if c.tlsConfig != nil {
		opts = append(opts, grpc.WithTransportCredentials(
			credentials.NewTLS(c.tlsConfig),
		))
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	return append(opts, c.grpcOptions...)
}

func (c *Config) KeepaliveParams() keepalive.ClientParameters {
	return keepalive.ClientParameters{
		Time:                c.rpc.KeepAliveInterval,
		Timeout:             c.rpc.KeepAliveTimeout,
		PermitWithoutStream: true,
	}
}
