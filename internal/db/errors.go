package db

import "errors"

// ErrIndexNotFound is returned when the target index or collection does not exist.
var ErrIndexNotFound = errors.New("db: index not found")

// Op constants name the backend call for error context.
const (
	OpSearch = "FT.SEARCH"
	OpPing   = "PING"
	OpQuery  = "Points.Query"
	OpHealth = "Qdrant.HealthCheck"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
