// Package field defines backend-neutral field descriptors for the index
// schema.
package field

import (
	"fmt"
	"regexp"
)

// Type tags the indexing behavior of a field.
type Type string

const (
	// TypeText is analyzed full text.
	TypeText Type = "text"
	// TypeKeywordList is a multivalued set of exact-match keywords.
	TypeKeywordList Type = "keyword_list"
	// TypeStoredList is a multivalued field that is stored but not indexed.
	TypeStoredList Type = "stored_list"
	// TypeDateTime is a sortable timestamp.
	TypeDateTime Type = "datetime"
	// TypeInteger is a sortable integer.
	TypeInteger Type = "integer"
	// TypeFloat is a sortable float.
	TypeFloat Type = "float"
	// TypeBoolean is a boolean flag.
	TypeBoolean Type = "boolean"
	// TypeNGram indexes character n-grams for substring matching.
	TypeNGram Type = "ngram"
	// TypeEdgeNGram indexes prefix n-grams for autocomplete matching.
	TypeEdgeNGram Type = "edge_ngram"
)

// Valid reports whether t is a known type tag.
func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeKeywordList, TypeStoredList, TypeDateTime,
		TypeInteger, TypeFloat, TypeBoolean, TypeNGram, TypeEdgeNGram:
		return true
	}
	return false
}

var nameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Descriptor describes one schema field (immutable value object).
type Descriptor struct {
	name       string
	ftype      Type
	boost      float64
	stored     bool
	document   bool
	normalized bool
}

// New validates and creates a Descriptor with boost 1.0.
func New(name string, ft Type) (Descriptor, error) {
	if name == "" {
		return Descriptor{}, fmt.Errorf("field name is required")
	}
	if !nameRegex.MatchString(name) {
		return Descriptor{}, fmt.Errorf("field name %q must be a lowercase identifier", name)
	}
	if !ft.Valid() {
		return Descriptor{}, fmt.Errorf("unknown field type %q", ft)
	}
	return Descriptor{name: name, ftype: ft, boost: 1.0}, nil
}

// MustNew is New, panicking on error. For statically known schemas.
func MustNew(name string, ft Type) Descriptor {
	d, err := New(name, ft)
	if err != nil {
		panic(err)
	}
	return d
}

// WithBoost returns a copy with the given relevance boost.
func (d Descriptor) WithBoost(boost float64) Descriptor {
	if boost > 0 {
		d.boost = boost
	}
	return d
}

// Stored returns a copy whose value is kept retrievable from the index.
func (d Descriptor) Stored() Descriptor {
	d.stored = true
	return d
}

// AsDocument returns a copy marked as the primary document field. Exactly
// one field per schema may carry this mark.
func (d Descriptor) AsDocument() Descriptor {
	d.document = true
	return d
}

// Normalized returns a copy marked as carrying pre-folded text. Backends
// that fold at analysis time skip these fields.
func (d Descriptor) Normalized() Descriptor {
	d.normalized = true
	return d
}

// Name returns the field name.
func (d Descriptor) Name() string { return d.name }

// FieldType returns the type tag.
func (d Descriptor) FieldType() Type { return d.ftype }

// Boost returns the relevance boost.
func (d Descriptor) Boost() float64 { return d.boost }

// IsStored reports whether the value is retrievable.
func (d Descriptor) IsStored() bool { return d.stored }

// IsDocument reports whether this is the primary document field.
func (d Descriptor) IsDocument() bool { return d.document }

// IsNormalized reports whether the field carries pre-folded text.
func (d Descriptor) IsNormalized() bool { return d.normalized }
