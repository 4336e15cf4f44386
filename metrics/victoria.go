package metrics

import (
	"fmt"
	"io"
	"time"

	vm "github.com/VictoriaMetrics/metrics"
)

type VictoriaOption func(c *VictoriaCollector)

// WithPrefix sets the metric name prefix, "horaedb_client" by default
func WithPrefix(prefix string) VictoriaOption {
	return func(c *VictoriaCollector) {
		c.prefix = prefix
	}
}

// WithSet registers metrics in set instead of a collector-owned one.
// The caller is responsible for exposing the set.
func WithSet(set *vm.Set) VictoriaOption {
	return func(c *VictoriaCollector) {
		c.set = set
	}
}

// VictoriaCollector implements Collector using VictoriaMetrics
type VictoriaCollector struct {
	set    *vm.Set
	prefix string

	routeCacheHits   *vm.Counter
	routeCacheMisses *vm.Counter
	routeEvictions   *vm.Counter
	dials            *vm.Counter
	dialErrors       *vm.Counter
}

var _ Collector = (*VictoriaCollector)(nil)

func NewVictoria(opts ...VictoriaOption) *VictoriaCollector {
	c := &VictoriaCollector{
		prefix: "horaedb_client",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.set == nil {
		c.set = vm.NewSet()
	}

	c.routeCacheHits = c.set.GetOrCreateCounter(c.prefix + "_route_cache_hits_total")
	c.routeCacheMisses = c.set.GetOrCreateCounter(c.prefix + "_route_cache_misses_total")
	c.routeEvictions = c.set.GetOrCreateCounter(c.prefix + "_route_evictions_total")
	c.dials = c.set.GetOrCreateCounter(c.prefix + "_dials_total")
	c.dialErrors = c.set.GetOrCreateCounter(c.prefix + "_dial_errors_total")

	return c
}

// WritePrometheus writes all collected metrics in Prometheus text format
func (c *VictoriaCollector) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

func (c *VictoriaCollector) IncCall(method string) {
	c.set.GetOrCreateCounter(fmt.Sprintf(`%s_calls_total{method=%q}`, c.prefix, method)).Inc()
}

func (c *VictoriaCollector) IncCallError(method, kind string) {
	c.set.GetOrCreateCounter(fmt.Sprintf(`%s_call_errors_total{method=%q,kind=%q}`, c.prefix, method, kind)).Inc()
}

func (c *VictoriaCollector) ObserveCallDuration(method string, d time.Duration) {
	c.set.GetOrCreateHistogram(fmt.Sprintf(`%s_call_duration_seconds{method=%q}`, c.prefix, method)).Update(d.Seconds())
}

func (c *VictoriaCollector) IncRouteCacheHit(n int) {
	c.routeCacheHits.Add(n)
}

func (c *VictoriaCollector) IncRouteCacheMiss(n int) {
	c.routeCacheMisses.Add(n)
}

func (c *VictoriaCollector) IncRouteEviction(n int) {
	c.routeEvictions.Add(n)
}

func (c *VictoriaCollector) IncRetry(method string) {
	c.set.GetOrCreateCounter(fmt.Sprintf(`%s_retries_total{method=%q}`, c.prefix, method)).Inc()
}

func (c *VictoriaCollector) IncDial() {
	c.dials.Inc()
}

func (c *VictoriaCollector) IncDialError() {
	c.dialErrors.Inc()
}
