package config

import "fmt"

// Mode defines how requests reach the cluster
type Mode int

const (
	// Direct resolves tables to their owning endpoints and talks to them directly
	Direct = Mode(iota)
	// Proxy sends every request to the bootstrap endpoint, which forwards it
	Proxy
)

func (m Mode) String() string {
	switch m {
	case Direct:
		return "direct"
	case Proxy:
		return "proxy"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}
