package db

import "errors"

// ErrUnavailable marks a failure of the storage collaborator. Repositories
// wrap driver errors with it so callers can map the failure without knowing
// the driver; the core never retries, retry policy belongs to the caller.
var ErrUnavailable = errors.New("storage unavailable")
