package xerrors

import (
	"github.com/horaedb/horaedb-client-go/internal/stack"
)

// WithStackTrace annotates err with file:line of the caller. Errors stay
// transparent for errors.Is and errors.As.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	return &stackError{
		err:   err,
		frame: stack.Caller(1),
	}
}

type stackError struct {
	err   error
	frame stack.Frame
}

func (e *stackError) Error() string {
	return e.err.Error() + " at `" + e.frame.String() + "`"
}

func (e *stackError) Unwrap() error {
	return e.err
}
