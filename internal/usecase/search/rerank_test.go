package search

import (
	"testing"

	"github.com/meridio/rankdex/internal/domain/search/result"
)

func TestPoolSize(t *testing.T) {
	cases := []struct {
		name                                string
		pageSize, configured, ceiling, want int
	}{
		{"derived floor", 10, 0, 0, 200},
		{"derived above floor", 30, 0, 0, 300},
		{"explicit", 10, 50, 0, 50},
		{"explicit clamped", 10, 500, 300, 300},
		{"derived clamped to default ceiling", 150, 0, 0, 1000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := PoolSize(c.pageSize, c.configured, c.ceiling); got != c.want {
				t.Errorf("PoolSize(%d, %d, %d) = %d, want %d", c.pageSize, c.configured, c.ceiling, got, c.want)
			}
		})
	}
}

func cand(id, title string, score float64) result.Candidate {
	return result.NewCandidate(id, title, score, nil)
}

func titles(cands []result.Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Title()
	}
	return out
}

func TestRankExactTitleFirst(t *testing.T) {
	r := NewReranker(testNormalize(), testTokens)
	ranked := r.Rank([]result.Candidate{
		cand("1", "Annual Report Summary and Appendix", 99),
		cand("2", "Annual Report", 1),
	}, "annual report")
	if ranked[0].ID() != "2" {
		t.Errorf("order = %v", titles(ranked))
	}
}

func TestRankBySimilarityThenScore(t *testing.T) {
	r := NewReranker(testNormalize(), testTokens)
	ranked := r.Rank([]result.Candidate{
		cand("low-sim", "report archive budget planning", 50),
		cand("high-sim", "annual report archive", 1),
		cand("high-sim-high-score", "annual report archive extra", 80),
	}, "annual report")
	// Both "high-sim" candidates share 2 query tokens; similarity decides
	// first (3-token title beats 4-token), score never overrides it.
	if ranked[0].ID() != "high-sim" {
		t.Errorf("order = %v", titles(ranked))
	}
	if ranked[2].ID() != "low-sim" {
		t.Errorf("order = %v", titles(ranked))
	}
}

func TestRankAccentInsensitiveExact(t *testing.T) {
	r := NewReranker(testNormalize(), testTokens)
	ranked := r.Rank([]result.Candidate{
		cand("1", "Cancion Collection Volume One", 10),
		cand("2", "Canción", 1),
	}, "cancion")
	if ranked[0].ID() != "2" {
		t.Errorf("folded title should match exactly: %v", titles(ranked))
	}
}

func TestRankDeterministicTiebreak(t *testing.T) {
	r := NewReranker(testNormalize(), testTokens)
	in := []result.Candidate{
		cand("b", "report beta", 5),
		cand("a", "report alpha", 5),
	}
	ranked := r.Rank(in, "report")
	// Same similarity, same score, same token count: normalized title
	// decides.
	if ranked[0].Title() != "report alpha" {
		t.Errorf("order = %v", titles(ranked))
	}
	again := r.Rank(in, "report")
	for i := range ranked {
		if ranked[i].ID() != again[i].ID() {
			t.Fatal("rank not deterministic")
		}
	}
}

func TestPaginate(t *testing.T) {
	items := make([]result.Candidate, 25)
	for i := range items {
		items[i] = cand("id", "t", 0)
	}

	p := Paginate(items, 2, 10)
	if p.Number() != 2 || len(p.Items()) != 10 || p.PageCount() != 3 || p.Total() != 25 {
		t.Errorf("page = %d/%d items=%d total=%d", p.Number(), p.PageCount(), len(p.Items()), p.Total())
	}
	if !p.HasNext() || !p.HasPrev() {
		t.Error("middle page should have both neighbors")
	}

	last := Paginate(items, 3, 10)
	if len(last.Items()) != 5 || last.HasNext() {
		t.Errorf("last page items = %d", len(last.Items()))
	}
}

func TestPaginateOutOfRangeFallsBackToFirst(t *testing.T) {
	items := []result.Candidate{cand("1", "t", 0), cand("2", "t", 0)}
	p := Paginate(items, 99, 10)
	if p.Number() != 1 || len(p.Items()) != 2 {
		t.Errorf("page = %d items = %d", p.Number(), len(p.Items()))
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, 1, 10)
	if p.Number() != 1 || p.PageCount() != 1 || p.Total() != 0 {
		t.Errorf("page = %+v", p)
	}
}
