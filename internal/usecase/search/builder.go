package search

import (
	"regexp"
	"strings"

	"github.com/meridio/rankdex/internal/domain/search/plan"
	"github.com/meridio/rankdex/internal/schema"
)

var (
	// sanitizeRe strips everything that is not a word character, whitespace
	// or hyphen. Accented letters survive via the Unicode classes.
	sanitizeRe = regexp.MustCompile(`[^\p{L}\p{N}_\s-]+`)
	spaceRe    = regexp.MustCompile(`\s+`)
	phraseRe   = regexp.MustCompile(`"([^"]*)"`)
	orRe       = regexp.MustCompile(`\bOR\b`)
)

// Sanitize replaces query syntax with spaces and collapses whitespace, so
// that separator punctuation still splits tokens ("AC/DC" keeps two terms).
func Sanitize(q string) string {
	q = sanitizeRe.ReplaceAllString(q, " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(q, " "))
}

// FieldClauses returns the multi-field targets of the content schema for a
// plan variant, carrying the schema boosts.
func FieldClauses(v plan.Variant) []plan.FieldClause {
	return []plan.FieldClause{
		{Field: v.Field(plan.FieldContent), Boost: 1},
		{Field: v.Field(plan.FieldTitle), Boost: schema.TitleBoost},
		{Field: v.Field(plan.FieldTags), Boost: schema.TagsBoost},
		{Field: v.Field(plan.FieldBody), Boost: schema.BodyBoost},
	}
}

// Builder turns raw queries into weighted plans. The variant is fixed at
// construction: normalized when the engine indexes pre-folded fields or
// when folded search is forced by configuration.
type Builder struct {
	normalize func(string) string
	variant   plan.Variant
	fields    []plan.FieldClause
}

// NewBuilder creates a builder. normalize is applied to every clause when
// normalized is true.
func NewBuilder(normalize func(string) string, normalized bool) *Builder {
	v := plan.VariantRaw
	if normalized {
		v = plan.VariantNormalized
	}
	return &Builder{normalize: normalize, variant: v, fields: FieldClauses(v)}
}

// Variant returns the fixed plan variant.
func (b *Builder) Variant() plan.Variant { return b.variant }

// Build parses and weights a raw query. ok is false when nothing queryable
// remains after sanitizing.
func (b *Builder) Build(raw string) (plan.Plan, bool) {
	exact := Sanitize(raw)
	if exact == "" {
		return plan.Plan{}, false
	}

	phrases, rest := extractPhrases(raw)
	or := orRe.MatchString(rest)
	terms := strings.Fields(Sanitize(orRe.ReplaceAllString(rest, " ")))

	if b.variant == plan.VariantNormalized {
		exact = b.normalize(exact)
		for i, t := range terms {
			terms[i] = b.normalize(t)
		}
		for i, ph := range phrases {
			phrases[i] = b.normalize(ph)
		}
	}

	return plan.Plan{
		Variant: b.variant,
		Exact:   exact,
		Terms:   terms,
		Phrases: phrases,
		Or:      or,
		Fields:  b.fields,
	}, true
}

// extractPhrases pulls quoted phrases out of the raw query and returns the
// remaining text.
func extractPhrases(q string) ([]string, string) {
	var phrases []string
	rest := phraseRe.ReplaceAllStringFunc(q, func(m string) string {
		if inner := Sanitize(strings.Trim(m, `"`)); inner != "" {
			phrases = append(phrases, inner)
		}
		return " "
	})
	return phrases, rest
}
