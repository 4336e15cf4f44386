package xerrors

import (
	"context"
	"errors"
	"strings"

	grpcCodes "google.golang.org/grpc/codes"
	grpcStatus "google.golang.org/grpc/status"
)

// TransportError is a call failure at grpc level after connection was established
type TransportError struct {
	Code    grpcCodes.Code
	Message string
	Address string

	err error
}

type teOpt func(te *TransportError)

func WithAddress(address string) teOpt {
	return func(te *TransportError) {
		te.Address = address
	}
}

// Transport converts err returned by grpc into TransportError.
// Already converted errors are returned as is.
func Transport(err error, opts ...teOpt) error {
	if err == nil {
		return nil
	}

	var t *TransportError
	if errors.As(err, &t) {
		return err
	}

	te := &TransportError{
		Code:    grpcCodes.Unknown,
		Message: err.Error(),
		err:     err,
	}
	if s, ok := grpcStatus.FromError(err); ok {
		te.Code = s.Code()
		te.Message = s.Message()
	} else if IsContextError(err) {
		te.Code = grpcStatus.FromContextError(err).Code()
	}
	for _, opt := range opts {
		if opt != nil {
			opt(te)
		}
	}

	return te
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString("transport error: ")
	b.WriteString(e.Code.String())
	if e.Message != "" {
		b.WriteString(", message: ")
		b.WriteString(e.Message)
	}
	if e.Address != "" {
		b.WriteString(", address: ")
		b.WriteString(e.Address)
	}

	return b.String()
}

func (e *TransportError) Unwrap() error {
	return e.err
}

// Is makes grpc deadline and cancellation codes comparable with context errors
func (e *TransportError) Is(target error) bool {
	switch target {
	case context.DeadlineExceeded:
		return e.Code == grpcCodes.DeadlineExceeded
	case context.Canceled:
		return e.Code == grpcCodes.Canceled
	default:
		return false
	}
}

func (e *TransportError) GRPCStatus() *grpcStatus.Status {
	return grpcStatus.New(e.Code, e.Message)
}

// IsTransportError reports whether err is TransportError with given grpc codes
func IsTransportError(err error, codes ...grpcCodes.Code) bool {
	var t *TransportError
	if !errors.As(err, &t) {
		return false
	}
	if len(codes) == 0 {
		return true
	}
	for _, code := range codes {
		if t.Code == code {
			return true
		}
	}

	return false
}
