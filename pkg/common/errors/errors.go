package errors

import "errors"

// Common error types used across the goretry library

var (
	// ErrDisposed indicates that an operation was attempted on a
	// disposed queue
	ErrDisposed = errors.New("queue is disposed")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// IsDisposed returns true if the error indicates use of a disposed
// component
func IsDisposed(err error) bool {
	return errors.Is(err, ErrDisposed)
}
