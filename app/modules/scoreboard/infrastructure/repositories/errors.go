package scoredb

import "errors"

// ErrNotFound is returned when no row exists for the requested name.
// Callers treat it as a normal absence, not a store failure.
var ErrNotFound = errors.New("score entry not found")
