package search

import (
	"context"

	"github.com/meridio/rankdex/internal/domain/search/plan"
	"github.com/meridio/rankdex/internal/index"
)

// Engine is the backend capability the search service consumes (ISP).
type Engine interface {
	Name() string
	UsesNormalizedFields() bool
	Search(ctx context.Context, p plan.Plan, limit int) (*index.Result, error)
}
