package horaedb

import (
	grpcCodes "google.golang.org/grpc/codes"

	"github.com/horaedb/horaedb-client-go/internal/client"
	"github.com/horaedb/horaedb-client-go/internal/status"
	"github.com/horaedb/horaedb-client-go/internal/xerrors"
)

type (
	// ConnectError is returned when connection to endpoint cannot be established
	ConnectError = xerrors.ConnectError
	// TransportError is a gRPC failure of an established connection
	TransportError = xerrors.TransportError
	// ServerError is a non-OK response header
	ServerError = xerrors.ServerError
	// RoutingConflictError is returned when tables of one query are owned by different endpoints
	RoutingConflictError = xerrors.RoutingConflictError
	// NoRouteError lists tables unknown to the server
	NoRouteError = xerrors.NoRouteError
	// WriteError lists failed parts of a split write
	WriteError   = xerrors.WriteError
	WriteFailure = xerrors.WriteFailure
)

var (
	ErrNoDatabase     = client.ErrNoDatabase
	ErrInvalidRequest = client.ErrInvalidRequest
)

// Server response codes
const (
	CodeOK              = status.OK
	CodeInvalidRoute    = status.InvalidRoute
	CodeInvalidArgument = status.InvalidArgument
	CodeUnauthorized    = status.Unauthorized
	CodeNotFound        = status.NotFound
	CodeTooManyRequests = status.TooManyRequests
	CodeInternalError   = status.InternalError
)

// IsConnectError reports whether err is a failure to establish connection
func IsConnectError(err error) bool {
	return xerrors.IsConnectError(err)
}

// IsTransportError reports whether err is a gRPC failure with one of given codes, any code if none given
func IsTransportError(err error, codes ...grpcCodes.Code) bool {
	return xerrors.IsTransportError(err, codes...)
}

// IsServerError reports whether err is a server response with one of given codes, any code if none given
func IsServerError(err error, codes ...uint32) bool {
	return xerrors.IsServerError(err, codes...)
}

// IsStaleRouteError reports whether server rejected request because table moved to another endpoint
func IsStaleRouteError(err error) bool {
	return xerrors.IsStaleRoute(err)
}

func IsRoutingConflict(err error) bool {
	return xerrors.IsRoutingConflict(err)
}

func IsNoRouteError(err error) bool {
	return xerrors.IsNoRoute(err)
}

func IsWriteError(err error) bool {
	return xerrors.IsWriteError(err)
}
