// Package plan defines the backend-neutral weighted query plan produced by
// the query builder and executed by index backends.
package plan

// Clause boosts. The exact-title phrase dominates everything, single-term
// title matches come next, and the multi-field clause relies on per-field
// boosts.
const (
	ExactTitleBoost = 50.0
	TermTitleBoost  = 10.0
)

// Well-known index field names targeted by the multi-field clause.
const (
	FieldContent = "content"
	FieldTitle   = "title"
	FieldTags    = "tags"
	FieldBody    = "body"
)

// NormalizedSuffix marks the pre-folded twin of a text field.
const NormalizedSuffix = "_norm"

// Variant selects whether the plan targets raw or pre-folded fields.
type Variant string

const (
	VariantRaw        Variant = "raw"
	VariantNormalized Variant = "normalized"
)

// Field maps a logical field name to the concrete index field for this
// variant.
func (v Variant) Field(name string) string {
	if v == VariantNormalized {
		return name + NormalizedSuffix
	}
	return name
}

// FieldClause is one target of the multi-field free-text clause.
type FieldClause struct {
	Field string
	Boost float64
}

// Plan is the parsed, weighted query. Exact carries the sanitized query
// text used for the phrase and single-term title clauses; Terms and
// Phrases carry the parsed free-text clause.
type Plan struct {
	Variant Variant
	Exact   string
	Terms   []string
	Phrases []string
	Or      bool
	Fields  []FieldClause
}

// TitleField returns the concrete title field for this plan's variant.
func (p Plan) TitleField() string { return p.Variant.Field(FieldTitle) }

// IsZero reports whether the plan carries no query at all.
func (p Plan) IsZero() bool {
	return p.Exact == "" && len(p.Terms) == 0 && len(p.Phrases) == 0
}
