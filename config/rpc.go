package config

import (
	"time"
)

var (
	DefaultConnectTimeout    = 3 * time.Second
	DefaultKeepAliveInterval = 600 * time.Second
	DefaultKeepAliveTimeout  = 3 * time.Second
	DefaultWriteTimeout      = 5 * time.Second
	DefaultQueryTimeout      = 60 * time.Second
	DefaultMaxSendMsgSize    = 20 * 1024 * 1024   // 20MB
	DefaultMaxRecvMsgSize    = 1024 * 1024 * 1024 // 1GB
)

// RPCConfig contains transport settings of every endpoint connection
type RPCConfig struct {
	// ConnectTimeout bounds a single blocking dial
	ConnectTimeout time.Duration

	// KeepAliveWhileIdle enables http2 pings on idle connections.
	// If false KeepAliveInterval and KeepAliveTimeout are ignored.
	KeepAliveWhileIdle bool
	KeepAliveInterval  time.Duration
	KeepAliveTimeout   time.Duration

	// DefaultWriteTimeout is applied to write and route calls
	// unless the caller sets its own timeout
	DefaultWriteTimeout time.Duration
	// DefaultQueryTimeout is applied to sql queries
	// unless the caller sets its own timeout
	DefaultQueryTimeout time.Duration

	MaxSendMsgSize int
	MaxRecvMsgSize int
}

func DefaultRPCConfig() RPCConfig {
	return RPCConfig{
		ConnectTimeout:      DefaultConnectTimeout,
		KeepAliveWhileIdle:  true,
		KeepAliveInterval:   DefaultKeepAliveInterval,
		KeepAliveTimeout:    DefaultKeepAliveTimeout,
		DefaultWriteTimeout: DefaultWriteTimeout,
		DefaultQueryTimeout: DefaultQueryTimeout,
		MaxSendMsgSize:      DefaultMaxSendMsgSize,
		MaxRecvMsgSize:      DefaultMaxRecvMsgSize,
	}
}

// withDefaults fills zero durations and sizes from DefaultRPCConfig
func (c RPCConfig) withDefaults() RPCConfig {
	d := DefaultRPCConfig()
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = d.ConnectTimeout
	}
	if c.KeepAliveInterval <= 0 {
		c.KeepAliveInterval = d.KeepAliveInterval
	}
	if c.KeepAliveTimeout <= 0 {
		c.KeepAliveTimeout = d.KeepAliveTimeout
	}
	if c.DefaultWriteTimeout <= 0 {
		c.DefaultWriteTimeout = d.DefaultWriteTimeout
	}
	if c.DefaultQueryTimeout <= 0 {
		c.DefaultQueryTimeout = d.DefaultQueryTimeout
	}
	if c.MaxSendMsgSize <= 0 {
		c.MaxSendMsgSize = d.MaxSendMsgSize
	}
	if c.MaxRecvMsgSize <= 0 {
		c.MaxRecvMsgSize = d.MaxRecvMsgSize
	}

	return c
}

// Authorization is a username/password pair sent as http basic auth
type Authorization struct {
	Username string
	Password string
}
