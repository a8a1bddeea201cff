package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure
// layers return these (optionally wrapped) so callers can translate them
// into transport-level responses without knowing the backend.
//
// These represent factual states about resources, not validation
// failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: insert raced an existing identifier
// - ErrUnavailable: backing service temporarily unreachable
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
