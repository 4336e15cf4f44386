package xerrors

import (
	"errors"
	"strconv"
	"strings"

	"github.com/horaedb/horaedb-client-go/internal/status"
)

// ServerError is a logical failure reported by server in response header
type ServerError struct {
	Code    uint32
	Message string
}

func Server(code uint32, msg string) error {
	return &ServerError{
		Code:    code,
		Message: msg,
	}
}

func (e *ServerError) Error() string {
	var b strings.Builder
	b.WriteString("server error: code = ")
	b.WriteString(strconv.FormatUint(uint64(e.Code), 10))
	b.WriteString(" (")
	b.WriteString(status.Name(e.Code))
	b.WriteByte(')')
	if e.Message != "" {
		b.WriteString(", message: ")
		b.WriteString(e.Message)
	}

	return b.String()
}

// StaleRoute reports whether the contacted endpoint does not own requested tables
func (e *ServerError) StaleRoute() bool {
	return status.IsStaleRoute(e.Code, e.Message)
}

// IsServerError reports whether err is ServerError with given codes
func IsServerError(err error, codes ...uint32) bool {
	var s *ServerError
	if !errors.As(err, &s) {
		return false
	}
	if len(codes) == 0 {
		return true
	}
	for _, code := range codes {
		if s.Code == code {
			return true
		}
	}

	return false
}

func IsStaleRoute(err error) bool {
	var s *ServerError
	if !errors.As(err, &s) {
		return false
	}

	return s.StaleRoute()
}
