// Package metrics contains the client metrics collector interface together with
// a no-op and a VictoriaMetrics implementation.
package metrics

import "time"

const (
	MethodQuery = "query"
	MethodWrite = "write"
	MethodRoute = "route"
)

const (
	ErrorKindTransport  = "transport"
	ErrorKindServer     = "server"
	ErrorKindStaleRoute = "stale_route"
	ErrorKindOther      = "other"
)

// Collector receives client events. Implementations must be safe for concurrent use.
type Collector interface {
	// IncCall counts rpc call issued with method
	IncCall(method string)
	// IncCallError counts failed rpc call by error kind
	IncCallError(method, kind string)
	// ObserveCallDuration observes duration of rpc call
	ObserveCallDuration(method string, d time.Duration)

	IncRouteCacheHit(n int)
	IncRouteCacheMiss(n int)
	IncRouteEviction(n int)

	// IncRetry counts requests retried after stale route
	IncRetry(method string)

	IncDial()
	IncDialError()
}

type nop struct{}

var _ Collector = nop{}

// Nop returns collector which discards all metrics
func Nop() Collector {
	return nop{}
}

func (nop) IncCall(string) {}
func (nop) IncCallError(string, string) {}
func (nop) ObserveCallDuration(string, time.Duration) {}
func (nop) IncRouteCacheHit(int) {}
func (nop) IncRouteCacheMiss(int) {}
func (nop) IncRouteEviction(int) {}
func (nop) IncRetry(string) {}
func (nop) IncDial() {}
func (nop) IncDialError() {}
