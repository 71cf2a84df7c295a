package search

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/meridio/rankdex/internal/domain"
	"github.com/meridio/rankdex/internal/domain/search/request"
	"github.com/meridio/rankdex/internal/domain/search/result"
)

// Config tunes the rerank pool.
type Config struct {
	// RerankPool fixes the candidate pool size. Zero derives it from the
	// page size.
	RerankPool int
	// RerankCeiling caps the pool. Zero applies DefaultPoolCeiling.
	RerankCeiling int
}

// Service executes searches: plan, pull a candidate pool from the engine,
// rerank by title similarity, paginate.
type Service struct {
	engine    Engine
	builder   *Builder
	reranker  *Reranker
	cfg       Config
	poolSizes prometheus.Observer
}

// New creates a search service. poolSizes may be nil.
func New(engine Engine, builder *Builder, reranker *Reranker, cfg Config, poolSizes prometheus.Observer) *Service {
	return &Service{engine: engine, builder: builder, reranker: reranker, cfg: cfg, poolSizes: poolSizes}
}

// Search runs one request. An empty or fully-sanitized-away query yields an
// empty page without touching the engine; an engine failure is reported as
// domain.ErrBackendUnavailable.
func (s *Service) Search(ctx context.Context, req request.Request) (result.Page, error) {
	if req.IsEmpty() {
		return result.Empty(), nil
	}
	p, ok := s.builder.Build(req.Query())
	if !ok {
		return result.Empty(), nil
	}

	pool := PoolSize(req.PageSize(), s.cfg.RerankPool, s.cfg.RerankCeiling)
	if s.poolSizes != nil {
		s.poolSizes.Observe(float64(pool))
	}

	res, err := s.engine.Search(ctx, p, pool)
	if err != nil {
		return result.Empty(), fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}

	cands := make([]result.Candidate, 0, len(res.Hits))
	for _, h := range res.Hits {
		title := h.Fields["title"]
		if title == "" {
			title = h.ID
		}
		cands = append(cands, result.NewCandidate(h.ID, title, h.Score, h.Fields))
	}

	ranked := s.reranker.Rank(cands, req.Query())
	return Paginate(ranked, req.Page(), req.PageSize()), nil
}
