package index

// FieldKind is the engine-level indexing behavior of a field, produced by
// the schema mapper from backend-neutral descriptors.
type FieldKind int

const (
	// KindIdentity is an exact-match key field (id, content_type, source_id).
	KindIdentity FieldKind = iota
	// KindFullText is analyzed text.
	KindFullText
	// KindKeywordSet is a comma-separated set of exact-match keywords.
	KindKeywordSet
	// KindStoredOnly is stored but never indexed.
	KindStoredOnly
	// KindDate is a sortable timestamp (indexed as epoch seconds).
	KindDate
	// KindInteger is a sortable integer.
	KindInteger
	// KindFloat is a sortable float.
	KindFloat
	// KindBoolean is a boolean flag.
	KindBoolean
	// KindNGram is character n-gram text for substring matching.
	KindNGram
	// KindEdgeNGram is prefix n-gram text for autocomplete matching.
	KindEdgeNGram
)

// N-gram bounds used by KindNGram and KindEdgeNGram fields.
const (
	NGramMin     = 3
	NGramMax     = 15
	EdgeNGramMin = 2
	EdgeNGramMax = 15
)

// Field is one concrete index field.
type Field struct {
	Name       string
	Kind       FieldKind
	Boost      float64
	Stored     bool
	Sortable   bool
	Spelling   bool
	Normalized bool
	MinGram    int
	MaxGram    int
}

// Definition describes one index: its name, analyzer language and fields.
type Definition struct {
	Name          string
	Language      string
	KeyPrefix     string
	Fields        []Field
	DocumentField string
}

// Field returns the named field, if present.
func (d *Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
