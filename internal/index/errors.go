package index

import "errors"

// Sentinel errors for index operations.
var (
	ErrIndexNotFound    = errors.New("index: index not found")
	ErrIndexExists      = errors.New("index: index already exists")
	ErrDocumentNotFound = errors.New("index: document not found")
)

// Op constants name the engine operation for error context.
const (
	OpEnsureSchema = "ensure_schema"
	OpDropSchema   = "drop_schema"
	OpIndex        = "index"
	OpDelete       = "delete"
	OpSearch       = "search"
	OpCount        = "count"
	OpPing         = "ping"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
