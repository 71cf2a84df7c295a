// Package analysis wires folding profiles and language-specific stopword and
// stemmer chains into bleve analyzers, and provides the tokenizer used for
// query/title comparison.
package analysis

import (
	bleveanalysis "github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/registry"

	"github.com/meridio/rankdex/internal/folding"
)

// FoldName is the registry name of the profile-driven folding token filter.
const FoldName = "rankdex_fold"

// FoldFilter folds accents in each token according to a folding profile.
type FoldFilter struct {
	normalizer *folding.Normalizer
}

// NewFoldFilter wraps a normalizer as a bleve token filter.
func NewFoldFilter(n *folding.Normalizer) *FoldFilter {
	return &FoldFilter{normalizer: n}
}

func (f *FoldFilter) Filter(input bleveanalysis.TokenStream) bleveanalysis.TokenStream {
	for _, tok := range input {
		tok.Term = []byte(f.normalizer.Normalize(string(tok.Term)))
	}
	return input
}

// foldFilterConstructor builds a FoldFilter from an analyzer config map with
// optional "preserve" (list of strings) and "replace" (string map) keys.
func foldFilterConstructor(config map[string]interface{}, _ *registry.Cache) (bleveanalysis.TokenFilter, error) {
	profile := folding.NewProfile(stringSlice(config["preserve"]), stringMap(config["replace"]))
	return NewFoldFilter(folding.NewNormalizer(profile)), nil
}

func init() {
	registry.RegisterTokenFilter(FoldName, foldFilterConstructor)
}

func stringSlice(v interface{}) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func stringMap(v interface{}) map[string]string {
	switch vv := v.(type) {
	case map[string]string:
		return vv
	case map[string]interface{}:
		out := make(map[string]string, len(vv))
		for k, e := range vv {
			if s, ok := e.(string); ok {
				out[k] = s
			}
		}
		return out
	}
	return nil
}
