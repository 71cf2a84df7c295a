// Package rankdex provides an embeddable client for the ranked search
// engine: accent-folded indexing, weighted query plans and title-similarity
// reranking over a bleve or RediSearch backend.
package rankdex

import (
	"context"
	"fmt"
	"time"

	"github.com/meridio/rankdex/internal/analysis"
	domdoc "github.com/meridio/rankdex/internal/domain/document"
	"github.com/meridio/rankdex/internal/domain/search/request"
	"github.com/meridio/rankdex/internal/folding"
	"github.com/meridio/rankdex/internal/index"
	bleveIndex "github.com/meridio/rankdex/internal/index/bleve"
	redisIndex "github.com/meridio/rankdex/internal/index/redis"
	"github.com/meridio/rankdex/internal/language"
	"github.com/meridio/rankdex/internal/memo"
	"github.com/meridio/rankdex/internal/schema"
	documentuc "github.com/meridio/rankdex/internal/usecase/document"
	searchuc "github.com/meridio/rankdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// builtinOverrides mirrors the per-language profiles shipped in the sample
// configuration. Spanish keeps "ñ" distinct from "n".
var builtinOverrides = map[string]folding.Overrides{
	"es": {Preserve: []string{"ñ"}},
}

// Document is a piece of content to index.
type Document struct {
	ContentType string
	SourceID    string
	Title       string
	Slug        string
	Tags        []string
	Body        string
	URL         string
}

// Hit is one search result.
type Hit struct {
	ID    string
	Title string
	Score float64
	URL   string
}

// Result is one page of reranked search results.
type Result struct {
	Page      int
	PageCount int
	Total     int
	Hits      []Hit
}

// Client is the rankdex embeddable entry point.
type Client struct {
	backend   index.Backend
	searchSvc *searchuc.Service
	docSvc    *documentuc.Service
	normalize func(string) string
}

// New creates a Client, connects to the backend and installs the schema.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{driver: "bleve", indexName: "content"}
	for _, o := range opts {
		o(cfg)
	}

	lang := language.Resolve(cfg.language)
	baseLang := language.Base(lang)
	rerankLang := language.Base(language.ForRerank(cfg.rerankLanguage, lang))

	resolver := folding.NewResolver(
		folding.Overrides{Preserve: cfg.preserve, Replace: cfg.replace},
		builtinOverrides,
		cfg.keepEnye,
	)
	profile := resolver.Resolve(baseLang)
	normalizer := folding.NewNormalizer(profile)

	def, err := schema.Build(cfg.indexName, baseLang, schema.ContentFields())
	if err != nil {
		return nil, fmt.Errorf("rankdex: build schema: %w", err)
	}

	backend, err := createBackend(cfg, profile)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := backend.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		backend.Close()
		return nil, fmt.Errorf("rankdex: backend not ready: %w", err)
	}
	if err := backend.EnsureSchema(ctx, def); err != nil {
		backend.Close()
		return nil, fmt.Errorf("rankdex: ensure schema: %w", err)
	}

	cache, err := memo.New(cfg.cacheSize, nil, nil)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("rankdex: create memo cache: %w", err)
	}
	normalize := func(s string) string {
		return cache.Normalized(s, normalizer.Normalize)
	}
	tokenizer := analysis.NewTokenizer(rerankLang, cfg.stopwordsAdd, cfg.stopwordsRemove)
	tokens := func(s string) []string {
		return cache.Tokens(s, tokenizer.Terms)
	}

	withNormalized := cfg.forceNormalized || backend.UsesNormalizedFields()

	searchSvc := searchuc.New(
		backend,
		searchuc.NewBuilder(normalize, withNormalized),
		searchuc.NewReranker(normalize, tokens),
		searchuc.Config{RerankPool: cfg.rerankPool, RerankCeiling: cfg.rerankCeiling},
		nil,
	)
	docSvc := documentuc.New(backend, normalize, withNormalized)

	return &Client{
		backend:   backend,
		searchSvc: searchSvc,
		docSvc:    docSvc,
		normalize: normalize,
	}, nil
}

func createBackend(cfg *clientConfig, profile folding.Profile) (index.Backend, error) {
	switch cfg.driver {
	case "bleve":
		return bleveIndex.New(bleveIndex.Config{Path: cfg.path}, profile), nil
	case "redis":
		s, err := redisIndex.NewStore(redisIndex.Config{
			Addrs:    cfg.addrs,
			Username: cfg.username,
			Password: cfg.password,
			DB:       cfg.db,
		})
		if err != nil {
			return nil, fmt.Errorf("rankdex: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("rankdex: unknown driver %q", cfg.driver)
	}
}

// Close releases the backend.
func (c *Client) Close() {
	if c.backend != nil {
		_ = c.backend.Close()
	}
}

// Ping checks backend connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.backend.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Upsert indexes one document.
func (c *Client) Upsert(ctx context.Context, doc Document) error {
	d, err := toDomain(doc)
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return c.docSvc.Upsert(ctx, d)
}

// UpsertBatch indexes documents in one backend round-trip.
func (c *Client) UpsertBatch(ctx context.Context, docs []Document) error {
	converted := make([]domdoc.Document, len(docs))
	for i, doc := range docs {
		d, err := toDomain(doc)
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		converted[i] = d
	}
	return c.docSvc.UpsertBatch(ctx, converted)
}

// Remove deletes a document by ID ("content_type.source_id"). Removing an
// absent document is a no-op.
func (c *Client) Remove(ctx context.Context, id string) error {
	return c.docSvc.Remove(ctx, id)
}

// Search runs a ranked query. page is 1-based; pageSize 0 selects the
// default.
func (c *Client) Search(ctx context.Context, query string, page, pageSize int) (Result, error) {
	req, err := request.New(query, page, pageSize, "")
	if err != nil {
		return Result{}, fmt.Errorf("search: %w", err)
	}
	res, err := c.searchSvc.Search(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("search: %w", err)
	}
	hits := make([]Hit, 0, len(res.Items()))
	for _, cand := range res.Items() {
		hits = append(hits, Hit{
			ID:    cand.ID(),
			Title: cand.Title(),
			Score: cand.Score(),
			URL:   cand.Field("url"),
		})
	}
	return Result{
		Page:      res.Number(),
		PageCount: res.PageCount(),
		Total:     res.Total(),
		Hits:      hits,
	}, nil
}

// Normalize applies the configured folding profile to a string. Useful for
// building pre-folded values outside the client.
func (c *Client) Normalize(s string) string {
	return c.normalize(s)
}

func toDomain(doc Document) (domdoc.Document, error) {
	return domdoc.New(doc.ContentType, doc.SourceID, doc.Title, doc.Slug, doc.Tags, doc.Body, doc.URL)
}
