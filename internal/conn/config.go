package conn

import (
	"time"

	"google.golang.org/grpc"

	"github.com/horaedb/horaedb-client-go/internal/meta"
	"github.com/horaedb/horaedb-client-go/log"
	"github.com/horaedb/horaedb-client-go/metrics"
)

type Config interface {
	ConnectTimeout() time.Duration
	GrpcDialOptions() []grpc.DialOption
	Meta() *meta.Meta
	Logger() log.Logger
	Metrics() metrics.Collector
}
