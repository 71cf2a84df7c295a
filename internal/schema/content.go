package schema

import "github.com/meridio/rankdex/internal/domain/field"

// Relevance boosts for the default content schema.
const (
	TitleBoost = 6.0
	TagsBoost  = 3.0
	BodyBoost  = 1.0
)

// ContentFields returns the default content schema: the aggregated content
// blob as the document field, stored title/tags/body with their boosts, the
// canonical URL, and the pre-folded twins used by engines without analyzer
// folding.
func ContentFields() []field.Descriptor {
	return []field.Descriptor{
		field.MustNew("content", field.TypeText).Stored().AsDocument(),
		field.MustNew("title", field.TypeText).WithBoost(TitleBoost).Stored(),
		field.MustNew("tags", field.TypeText).WithBoost(TagsBoost).Stored(),
		field.MustNew("body", field.TypeText).WithBoost(BodyBoost).Stored(),
		field.MustNew("url", field.TypeStoredList).Stored(),
		field.MustNew("content_norm", field.TypeText).Normalized(),
		field.MustNew("title_norm", field.TypeText).WithBoost(TitleBoost).Normalized(),
		field.MustNew("tags_norm", field.TypeText).WithBoost(TagsBoost).Normalized(),
		field.MustNew("body_norm", field.TypeText).Normalized(),
	}
}
