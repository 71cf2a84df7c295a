// Package index defines the backend-neutral index contract: engines plug in
// behind Backend, and the rest of the service speaks entries, hits and
// definitions.
package index

import (
	"context"
	"time"

	"github.com/meridio/rankdex/internal/domain/search/plan"
)

// Backend is the full index engine facade. Consumers depend on the narrow
// sub-interfaces (ISP), the composition root wires a concrete engine.
type Backend interface {
	Pinger
	SchemaManager
	Writer
	Searcher
	// Name identifies the engine ("bleve", "redis").
	Name() string
	// UsesNormalizedFields reports whether queries must target the
	// pre-folded *_norm twins instead of relying on analyzer folding.
	UsesNormalizedFields() bool
	Close() error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SchemaManager provides index lifecycle operations.
type SchemaManager interface {
	// EnsureSchema creates the index for def if it does not exist yet.
	EnsureSchema(ctx context.Context, def *Definition) error
	DropSchema(ctx context.Context, name string) error
}

// Entry is one flat document ready for indexing: stored and indexed values
// keyed by field name, already rendered to strings.
type Entry struct {
	ID     string
	Fields map[string]string
}

// Writer provides document write operations.
type Writer interface {
	Index(ctx context.Context, entries []Entry) error
	Delete(ctx context.Context, id string) error
}

// Hit is one scored match.
type Hit struct {
	ID     string
	Score  float64
	Fields map[string]string
}

// Result is the raw outcome of a backend search.
type Result struct {
	Total int
	Hits  []Hit
}

// Searcher executes weighted query plans.
type Searcher interface {
	// Search runs the plan and returns up to limit hits ordered by engine
	// score.
	Search(ctx context.Context, p plan.Plan, limit int) (*Result, error)
	Count(ctx context.Context) (int, error)
}
