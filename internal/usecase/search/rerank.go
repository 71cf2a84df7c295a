package search

import (
	"sort"

	"github.com/meridio/rankdex/internal/domain/search/request"
	"github.com/meridio/rankdex/internal/domain/search/result"
)

// Pool sizing: without explicit configuration the pool is ten pages of
// candidates, at least minPool, never above the ceiling.
const (
	DefaultPoolCeiling = 1000
	minPool            = 200
	poolPageFactor     = 10
)

// PoolSize computes how many candidates to pull from the engine for
// reranking.
func PoolSize(pageSize, configured, ceiling int) int {
	if ceiling <= 0 {
		ceiling = DefaultPoolCeiling
	}
	pool := configured
	if pool <= 0 {
		pool = pageSize * poolPageFactor
		if pool < minPool {
			pool = minPool
		}
	}
	if pool > ceiling {
		pool = ceiling
	}
	return pool
}

// Reranker reorders engine hits by title similarity to the query.
type Reranker struct {
	normalize func(string) string
	tokens    func(string) []string
}

// NewReranker creates a reranker over the given normalize and tokenize
// functions (usually memoized).
func NewReranker(normalize func(string) string, tokens func(string) []string) *Reranker {
	return &Reranker{normalize: normalize, tokens: tokens}
}

type ranked struct {
	cand       result.Candidate
	notExact   bool
	similarity float64
	tokenCount int
	titleNorm  string
}

func (a ranked) less(b ranked) bool {
	if a.notExact != b.notExact {
		return !a.notExact
	}
	if a.similarity != b.similarity {
		return a.similarity > b.similarity
	}
	if a.cand.Score() != b.cand.Score() {
		return a.cand.Score() > b.cand.Score()
	}
	if a.tokenCount != b.tokenCount {
		return a.tokenCount < b.tokenCount
	}
	return a.titleNorm < b.titleNorm
}

// Rank sorts candidates by: exact normalized-title matches first, then
// descending token similarity, then descending engine score, then shorter
// titles, with the normalized title as the deterministic tiebreaker.
func (r *Reranker) Rank(cands []result.Candidate, rawQuery string) []result.Candidate {
	if len(cands) == 0 {
		return nil
	}
	qNorm := r.normalize(rawQuery)
	qTokens := r.tokens(qNorm)

	rs := make([]ranked, len(cands))
	for i, c := range cands {
		tNorm := r.normalize(c.Title())
		toks := r.tokens(tNorm)
		rc := ranked{
			cand:       c,
			notExact:   tNorm != qNorm,
			similarity: Jaccard(qTokens, toks),
			titleNorm:  tNorm,
		}
		if rc.notExact {
			rc.tokenCount = len(toks)
		}
		rs[i] = rc
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].less(rs[j]) })

	out := make([]result.Candidate, len(rs))
	for i, rc := range rs {
		out[i] = rc.cand
	}
	return out
}

// Paginate slices the ranked pool into the requested page. An out-of-range
// page falls back to the first page.
func Paginate(items []result.Candidate, page, size int) result.Page {
	if size < 1 {
		size = request.DefaultPageSize
	}
	total := len(items)
	pageCount := (total + size - 1) / size
	if pageCount == 0 {
		pageCount = 1
	}
	if page < 1 || page > pageCount {
		page = 1
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	return result.NewPage(items[start:end], page, pageCount, total)
}
