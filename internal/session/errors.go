package session

import "errors"

// ErrNoInterfaces is returned when enumeration succeeds but finds nothing.
var ErrNoInterfaces = errors.New("no network interfaces found")

// EnumerationError wraps a failure of the interface provider.
type EnumerationError struct {
	Err error
}

func (e *EnumerationError) Error() string {
	return "interface error: " + e.Err.Error()
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// InterfaceNotFoundError is returned when the requested interface was not enumerated.
type InterfaceNotFoundError struct {
	Name string
}

func (e *InterfaceNotFoundError) Error() string {
	return "interface not found: " + e.Name
}
