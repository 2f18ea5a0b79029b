package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and journals return these
// (optionally wrapped) so the service can translate them into domain errors.
//
//   - ErrNotFound: entity does not exist in the backing store
//   - ErrConflict: a uniqueness constraint rejected the write
//   - ErrUnavailable: the backing store could not be reached
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
