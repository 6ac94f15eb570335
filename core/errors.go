package core

import "fmt"

var (
	// ErrNoBackend is returned when an operation is invoked without a
	// configured backend capability.
	ErrNoBackend = fmt.Errorf("no backend configured")
)
