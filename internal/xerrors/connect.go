package xerrors

import (
	"errors"
	"fmt"
)

// ConnectError means the address is malformed or the dial failed
type ConnectError struct {
	Address string
	Err     error
}

func Connect(address string, err error) error {
	return &ConnectError{
		Address: address,
		Err:     err,
	}
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect to %q failed: %v", e.Address, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

func IsConnectError(err error) bool {
	var c *ConnectError

	return errors.As(err, &c)
}
