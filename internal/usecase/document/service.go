// Package document implements the indexing workflow: rendering content
// documents into flat index entries, including the pre-folded twins for
// engines that need them.
package document

import (
	"context"
	"fmt"

	domdoc "github.com/meridio/rankdex/internal/domain/document"
	"github.com/meridio/rankdex/internal/domain/search/plan"
	"github.com/meridio/rankdex/internal/index"
	"github.com/meridio/rankdex/internal/schema"
)

// Service writes documents to the index backend.
type Service struct {
	writer         Writer
	normalize      func(string) string
	withNormalized bool
}

// New creates a document service. withNormalized adds the *_norm fields to
// every entry; engines that fold at analysis time do not need them.
func New(writer Writer, normalize func(string) string, withNormalized bool) *Service {
	return &Service{writer: writer, normalize: normalize, withNormalized: withNormalized}
}

// Upsert indexes one document, replacing any previous version under the
// same ID.
func (s *Service) Upsert(ctx context.Context, doc domdoc.Document) error {
	return s.UpsertBatch(ctx, []domdoc.Document{doc})
}

// UpsertBatch indexes documents in one backend round-trip.
func (s *Service) UpsertBatch(ctx context.Context, docs []domdoc.Document) error {
	if len(docs) == 0 {
		return nil
	}
	entries := make([]index.Entry, len(docs))
	for i := range docs {
		entries[i] = index.Entry{ID: docs[i].ID(), Fields: s.fields(&docs[i])}
	}
	if err := s.writer.Index(ctx, entries); err != nil {
		return fmt.Errorf("index documents: %w", err)
	}
	return nil
}

// Remove deletes a document by ID. Removing an absent document is a no-op.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.writer.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *Service) fields(d *domdoc.Document) map[string]string {
	fields := map[string]string{
		schema.FieldID:          d.ID(),
		schema.FieldContentType: d.ContentType(),
		schema.FieldSourceID:    d.SourceID(),
		plan.FieldTitle:         d.DisplayTitle(),
		plan.FieldTags:          d.TagText(),
		plan.FieldBody:          d.Body(),
		plan.FieldContent:       d.Content(),
		"url":                   d.URL(),
	}
	if s.withNormalized {
		for _, name := range []string{plan.FieldTitle, plan.FieldTags, plan.FieldBody, plan.FieldContent} {
			fields[name+plan.NormalizedSuffix] = s.normalize(fields[name])
		}
	}
	return fields
}
