package endpoint

import (
	"errors"
	"fmt"
	"math"
	"net"
	"strconv"
	"strings"
)

// Scheme is prepended to every address before it is handed to grpc
const Scheme = "dns"

var errMalformedAddress = errors.New("malformed address")

// Endpoint is an immutable network address of one server instance
type Endpoint struct {
	host string
	port uint16
}

func New(host string, port uint16) Endpoint {
	return Endpoint{
		host: host,
		port: port,
	}
}

// Parse validates address in form `host:port`
func Parse(address string) (Endpoint, error) {
	if strings.TrimSpace(address) == "" {
		return Endpoint{}, fmt.Errorf("%w: empty address", errMalformedAddress)
	}
	if strings.Contains(address, "://") {
		return Endpoint{}, fmt.Errorf("%w: unexpected scheme in %q", errMalformedAddress, address)
	}

	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%w: %w", errMalformedAddress, err)
	}
	if host == "" {
		return Endpoint{}, fmt.Errorf("%w: empty host in %q", errMalformedAddress, address)
	}

	p, err := strconv.ParseUint(port, 10, 16)
	if err != nil || p == 0 {
		return Endpoint{}, fmt.Errorf("%w: invalid port %q", errMalformedAddress, port)
	}

	return New(host, uint16(p)), nil
}

// FromRoute builds endpoint from ip and port reported by route response.
// The second result is false if the pair does not form a dialable address.
func FromRoute(ip string, port uint32) (Endpoint, bool) {
	if ip == "" || port == 0 || port > math.MaxUint16 {
		return Endpoint{}, false
	}

	return New(ip, uint16(port)), true
}

// IsMalformed reports whether err was produced by Parse
func IsMalformed(err error) bool {
	return errors.Is(err, errMalformedAddress)
}

func (e Endpoint) Host() string {
	return e.host
}

func (e Endpoint) Port() uint16 {
	return e.port
}

func (e Endpoint) IsZero() bool {
	return e == Endpoint{}
}

// Address returns endpoint in form `host:port`
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.host, strconv.Itoa(int(e.port)))
}

// Target returns address with scheme required by grpc resolver
func (e Endpoint) Target() string {
	return Scheme + ":///" + e.Address()
}

func (e Endpoint) String() string {
	return e.Address()
}
