package xerrors

import (
	"errors"
	"strings"
)

// WriteFailure describes part of a split write which was not applied
type WriteFailure struct {
	Address string
	Tables  []string
	Err     error
}

// WriteError is returned when some endpoints of a split write failed.
// Parts sent to other endpoints may have been applied.
type WriteError struct {
	Failures []WriteFailure
}

func (e *WriteError) Error() string {
	var b strings.Builder
	b.WriteString("write failed on ")
	for i, f := range e.Failures {
		if i > 0 {
			b.WriteString("; ")
		}
		if f.Address != "" {
			b.WriteString(f.Address)
		} else {
			b.WriteString("<unrouted>")
		}
		b.WriteString(" [")
		b.WriteString(strings.Join(f.Tables, ", "))
		b.WriteString("]: ")
		b.WriteString(f.Err.Error())
	}

	return b.String()
}

func (e *WriteError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}

	return errs
}

// FailedTables returns all tables of failed parts
func (e *WriteError) FailedTables() []string {
	var tables []string
	for _, f := range e.Failures {
		tables = append(tables, f.Tables...)
	}

	return tables
}

func IsWriteError(err error) bool {
	var w *WriteError

	return errors.As(err, &w)
}
