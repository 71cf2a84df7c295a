package search

import (
	"context"
	"strings"
	"testing"

	"github.com/meridio/rankdex/internal/domain/search/plan"
	"github.com/meridio/rankdex/internal/folding"
	"github.com/meridio/rankdex/internal/index"
)

// mockEngine implements the consumer interface for tests.
type mockEngine struct {
	searchFn   func(ctx context.Context, p plan.Plan, limit int) (*index.Result, error)
	normalized bool
}

func (m *mockEngine) Name() string { return "mock" }

func (m *mockEngine) UsesNormalizedFields() bool { return m.normalized }

func (m *mockEngine) Search(ctx context.Context, p plan.Plan, limit int) (*index.Result, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, p, limit)
	}
	return &index.Result{}, nil
}

// testNormalize folds with the Spanish profile.
func testNormalize() func(string) string {
	n := folding.NewNormalizer(folding.NewProfile([]string{"ñ"}, nil))
	return n.Normalize
}

// testTokens is a plain lowercase word splitter; chain behavior is covered
// in the analysis package.
func testTokens(s string) []string {
	var out []string
	for _, f := range strings.Fields(strings.ToLower(s)) {
		if len(f) > 1 {
			out = append(out, f)
		}
	}
	return out
}

func newTestService(t *testing.T, eng *mockEngine, cfg Config) *Service {
	t.Helper()
	b := NewBuilder(testNormalize(), eng.UsesNormalizedFields())
	r := NewReranker(testNormalize(), testTokens)
	return New(eng, b, r, cfg, nil)
}
