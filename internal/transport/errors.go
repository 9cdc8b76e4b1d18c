// internal/transport/errors.go
package transport

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned when a line is submitted while no serial
// session is open.
var ErrNotConnected = errors.New("serial link not connected")

// ConnectError reports a failure to open a serial port
type ConnectError struct {
	Port string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Port, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// ReadError reports the reader goroutine terminating on a port I/O failure
type ReadError struct {
	Port string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("serial read on %s: %v", e.Port, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
