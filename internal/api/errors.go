package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies gateway failures.
type ErrorKind int

const (
	// KindNetwork means no usable response reached the client (connection
	// refused, timeout, unreadable body).
	KindNetwork ErrorKind = iota
	// KindServer means the backend responded with a non-2xx status.
	KindServer
)

// String returns a human-readable kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error represents a failed backend call. All transport and HTTP failures are
// normalized into this shape; nothing else crosses the gateway boundary.
type Error struct {
	Kind     ErrorKind
	Endpoint string
	Status   int    // HTTP status for KindServer, 0 otherwise
	Detail   string // backend-supplied detail text, or a generic fallback
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error for %s: %s: %v", e.Kind, e.Endpoint, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s error for %s: %s", e.Kind, e.Endpoint, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsNetwork reports whether err is a gateway error of kind network.
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetwork
}

// IsServer reports whether err is a gateway error of kind server.
func IsServer(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindServer
}
