// Package schema maps backend-neutral field descriptors to concrete index
// definitions.
package schema

import (
	"fmt"

	"github.com/meridio/rankdex/internal/domain"
	"github.com/meridio/rankdex/internal/domain/field"
	"github.com/meridio/rankdex/internal/index"
)

// Identity fields present in every index regardless of the descriptor set.
const (
	FieldID          = "id"
	FieldContentType = "content_type"
	FieldSourceID    = "source_id"
)

// Build maps descriptors to an index definition. The three identity fields
// are always added first; a definition that gains nothing beyond them is
// rejected with domain.ErrNoSearchableFields.
func Build(name, baseLang string, descs []field.Descriptor) (*index.Definition, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: index name is required", domain.ErrInvalidSchema)
	}
	def := &index.Definition{
		Name:      name,
		Language:  baseLang,
		KeyPrefix: name + ":doc:",
		Fields: []index.Field{
			{Name: FieldID, Kind: index.KindIdentity, Stored: true},
			{Name: FieldContentType, Kind: index.KindIdentity, Stored: true},
			{Name: FieldSourceID, Kind: index.KindIdentity, Stored: true},
		},
	}
	identityCount := len(def.Fields)

	for _, d := range descs {
		if isIdentityName(d.Name()) {
			return nil, fmt.Errorf("%w: field name %q is reserved", domain.ErrInvalidSchema, d.Name())
		}
		if _, dup := def.Field(d.Name()); dup {
			return nil, fmt.Errorf("%w: duplicate field %q", domain.ErrInvalidSchema, d.Name())
		}
		f, err := mapDescriptor(d)
		if err != nil {
			return nil, err
		}
		if d.IsDocument() {
			if def.DocumentField != "" {
				return nil, fmt.Errorf("%w: multiple document fields (%s, %s)",
					domain.ErrInvalidSchema, def.DocumentField, d.Name())
			}
			f.Spelling = true
			def.DocumentField = f.Name
		}
		def.Fields = append(def.Fields, f)
	}

	if len(def.Fields) <= identityCount {
		return nil, domain.ErrNoSearchableFields
	}
	return def, nil
}

func isIdentityName(name string) bool {
	return name == FieldID || name == FieldContentType || name == FieldSourceID
}

func mapDescriptor(d field.Descriptor) (index.Field, error) {
	f := index.Field{
		Name:       d.Name(),
		Boost:      d.Boost(),
		Stored:     d.IsStored(),
		Normalized: d.IsNormalized(),
	}
	switch d.FieldType() {
	case field.TypeStoredList:
		f.Kind = index.KindStoredOnly
		f.Stored = true
	case field.TypeKeywordList:
		f.Kind = index.KindKeywordSet
	case field.TypeDateTime:
		f.Kind = index.KindDate
		f.Sortable = true
	case field.TypeInteger:
		f.Kind = index.KindInteger
		f.Sortable = true
	case field.TypeFloat:
		f.Kind = index.KindFloat
		f.Sortable = true
	case field.TypeBoolean:
		f.Kind = index.KindBoolean
	case field.TypeNGram:
		f.Kind = index.KindNGram
		f.MinGram, f.MaxGram = index.NGramMin, index.NGramMax
	case field.TypeEdgeNGram:
		f.Kind = index.KindEdgeNGram
		f.MinGram, f.MaxGram = index.EdgeNGramMin, index.EdgeNGramMax
	case field.TypeText:
		f.Kind = index.KindFullText
		f.Sortable = true
	default:
		return index.Field{}, fmt.Errorf("%w: field %q has unknown type %q",
			domain.ErrInvalidSchema, d.Name(), d.FieldType())
	}
	return f, nil
}
