package bleve

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/blevesearch/bleve/v2"

	"github.com/meridio/rankdex/internal/folding"
	"github.com/meridio/rankdex/internal/index"
)

// Config holds bleve engine settings.
type Config struct {
	// Path is the on-disk index directory. Empty selects an in-memory
	// index (tests, ephemeral deployments).
	Path string
}

// Store is the embedded bleve engine behind the Backend interface.
type Store struct {
	cfg     Config
	profile folding.Profile
	idx     bleve.Index
	def     *index.Definition
}

// New creates an unopened store. EnsureSchema opens or creates the index.
func New(cfg Config, profile folding.Profile) *Store {
	return &Store{cfg: cfg, profile: profile}
}

// Name identifies the engine.
func (s *Store) Name() string { return "bleve" }

// UsesNormalizedFields is false: the analyzer chain folds at index and
// query time.
func (s *Store) UsesNormalizedFields() bool { return false }

// EnsureSchema opens the index at the configured path, creating it with the
// definition's mapping when absent.
func (s *Store) EnsureSchema(_ context.Context, def *index.Definition) error {
	if s.idx != nil {
		return nil
	}
	m, err := buildMapping(def, s.profile)
	if err != nil {
		return &index.Error{Op: index.OpEnsureSchema, Err: err}
	}

	var idx bleve.Index
	if s.cfg.Path == "" {
		idx, err = bleve.NewMemOnly(m)
	} else {
		idx, err = bleve.Open(s.cfg.Path)
		if err == bleve.ErrorIndexPathDoesNotExist {
			idx, err = bleve.New(s.cfg.Path, m)
		}
	}
	if err != nil {
		return &index.Error{Op: index.OpEnsureSchema, Err: err}
	}
	s.idx = idx
	s.def = def
	return nil
}

// DropSchema closes the index and removes its files.
func (s *Store) DropSchema(_ context.Context, _ string) error {
	if s.idx != nil {
		if err := s.idx.Close(); err != nil {
			return &index.Error{Op: index.OpDropSchema, Err: err}
		}
		s.idx = nil
		s.def = nil
	}
	if s.cfg.Path != "" {
		if err := os.RemoveAll(s.cfg.Path); err != nil {
			return &index.Error{Op: index.OpDropSchema, Err: err}
		}
	}
	return nil
}

// Ping reports whether the index is open.
func (s *Store) Ping(_ context.Context) error {
	if s.idx == nil {
		return &index.Error{Op: index.OpPing, Err: index.ErrIndexNotFound}
	}
	return nil
}

// WaitForReady is immediate for an embedded engine: there is no remote
// server to wait for, and the index itself is opened by EnsureSchema.
func (s *Store) WaitForReady(_ context.Context, _ time.Duration) error {
	return nil
}

// Close releases the index.
func (s *Store) Close() error {
	if s.idx == nil {
		return nil
	}
	err := s.idx.Close()
	s.idx = nil
	return err
}

// Index upserts entries in one batch.
func (s *Store) Index(_ context.Context, entries []index.Entry) error {
	if err := s.ready(index.OpIndex); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	batch := s.idx.NewBatch()
	for _, e := range entries {
		if err := batch.Index(e.ID, s.document(e.Fields)); err != nil {
			return &index.Error{Op: index.OpIndex, Err: fmt.Errorf("id %s: %w", e.ID, err)}
		}
	}
	if err := s.idx.Batch(batch); err != nil {
		return &index.Error{Op: index.OpIndex, Err: err}
	}
	return nil
}

// Delete removes a document. Deleting an absent ID is a no-op.
func (s *Store) Delete(_ context.Context, id string) error {
	if err := s.ready(index.OpDelete); err != nil {
		return err
	}
	if err := s.idx.Delete(id); err != nil {
		return &index.Error{Op: index.OpDelete, Err: err}
	}
	return nil
}

// Count returns the number of indexed documents.
func (s *Store) Count(_ context.Context) (int, error) {
	if err := s.ready(index.OpCount); err != nil {
		return 0, err
	}
	n, err := s.idx.DocCount()
	if err != nil {
		return 0, &index.Error{Op: index.OpCount, Err: err}
	}
	return int(n), nil
}

func (s *Store) ready(op string) error {
	if s.idx == nil {
		return &index.Error{Op: op, Err: index.ErrIndexNotFound}
	}
	return nil
}

// document converts flat string fields to the typed values the mapping
// expects. Pre-folded twins are dropped; unparsable values fall back to the
// raw string.
func (s *Store) document(fields map[string]string) map[string]interface{} {
	doc := make(map[string]interface{}, len(fields))
	for name, val := range fields {
		f, ok := s.def.Field(name)
		if !ok || f.Normalized {
			continue
		}
		switch f.Kind {
		case index.KindDate:
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				doc[name] = t
				continue
			}
			doc[name] = val
		case index.KindInteger, index.KindFloat:
			if n, err := strconv.ParseFloat(val, 64); err == nil {
				doc[name] = n
				continue
			}
			doc[name] = val
		case index.KindBoolean:
			if b, err := strconv.ParseBool(val); err == nil {
				doc[name] = b
				continue
			}
			doc[name] = val
		default:
			doc[name] = val
		}
	}
	return doc
}
