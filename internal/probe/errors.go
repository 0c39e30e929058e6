package probe

import "errors"

// Sentinel errors for probe runs.
var (
	ErrUnhealthy  = errors.New("service unhealthy")
	ErrBadControl = errors.New("unusable controls")
	ErrViolations = errors.New("view invariants violated")
	ErrHTTPStatus = errors.New("unexpected HTTP status")
)
