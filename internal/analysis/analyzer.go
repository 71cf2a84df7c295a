package analysis

import (
	"fmt"

	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/meridio/rankdex/internal/folding"
)

// AnalyzerName returns the registered name of the full-text analyzer for a
// resolved base language.
func AnalyzerName(baseLang string) string {
	return "rankdex_" + baseLang
}

// RegisterAnalyzer installs the folding filter and the full analyzer chain
// (tokenize, fold, lowercase, language stopwords, language stemmer) on an
// index mapping and returns the analyzer name to reference from field
// mappings.
func RegisterAnalyzer(im *mapping.IndexMappingImpl, baseLang string, profile folding.Profile) (string, error) {
	ch := ResolveChain(baseLang)

	filterName := "fold_" + ch.Language
	err := im.AddCustomTokenFilter(filterName, map[string]interface{}{
		"type":     FoldName,
		"preserve": toIfaceSlice(profile.PreserveStrings()),
		"replace":  toIfaceMap(profile.Replace()),
	})
	if err != nil {
		return "", fmt.Errorf("register fold filter: %w", err)
	}

	name := AnalyzerName(ch.Language)
	err = im.AddCustomAnalyzer(name, map[string]interface{}{
		"type":      custom.Name,
		"tokenizer": unicode.Name,
		"token_filters": []interface{}{
			filterName,
			lowercase.Name,
			ch.Stop,
			ch.Stem,
		},
	})
	if err != nil {
		return "", fmt.Errorf("register analyzer %s: %w", name, err)
	}
	return name, nil
}

func toIfaceSlice(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func toIfaceMap(in map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
