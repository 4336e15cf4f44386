package xerrors

import (
	"context"
	"errors"
	"slices"
)

// As reports whether err matches any of targets. Every matched target is set.
func As(err error, targets ...interface{}) bool {
	matched := false
	for _, target := range targets {
		if errors.As(err, target) {
			matched = true
		}
	}

	return matched
}

// Is reports whether err matches any of targets
func Is(err error, targets ...error) bool {
	return slices.ContainsFunc(targets, func(target error) bool {
		return errors.Is(err, target)
	})
}

func IsContextError(err error) bool {
	return Is(err, context.Canceled, context.DeadlineExceeded)
}
