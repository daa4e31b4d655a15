package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrValidation marks infeasible or malformed input; the caller must fix
	// the event or venue configuration and retry the whole operation.
	ErrValidation = errors.New("validation failed")
)
