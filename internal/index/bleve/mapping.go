// Package bleve implements the index backend on an embedded bleve index.
// Folding happens at analysis time, so pre-folded twin fields are skipped.
package bleve

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/token/edgengram"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/token/ngram"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/meridio/rankdex/internal/analysis"
	"github.com/meridio/rankdex/internal/folding"
	"github.com/meridio/rankdex/internal/index"
)

const (
	ngramAnalyzer = "rankdex_ngram"
	edgeAnalyzer  = "rankdex_edge"
)

// buildMapping translates an index definition into a bleve index mapping
// with the language analyzer chain installed.
func buildMapping(def *index.Definition, profile folding.Profile) (*mapping.IndexMappingImpl, error) {
	im := bleve.NewIndexMapping()
	textAnalyzer, err := analysis.RegisterAnalyzer(im, def.Language, profile)
	if err != nil {
		return nil, err
	}

	doc := bleve.NewDocumentMapping()
	doc.Dynamic = false
	grams := map[string]bool{}

	for _, f := range def.Fields {
		// The analyzer already folds; the *_norm twins exist for engines
		// that cannot.
		if f.Normalized {
			continue
		}
		var fm *mapping.FieldMapping
		switch f.Kind {
		case index.KindIdentity:
			fm = bleve.NewTextFieldMapping()
			fm.Analyzer = keyword.Name
			fm.Store = true
		case index.KindFullText:
			fm = bleve.NewTextFieldMapping()
			fm.Analyzer = textAnalyzer
			fm.Store = f.Stored
		case index.KindKeywordSet:
			fm = bleve.NewTextFieldMapping()
			fm.Analyzer = simple.Name
			fm.Store = f.Stored
		case index.KindStoredOnly:
			fm = bleve.NewTextFieldMapping()
			fm.Index = false
			fm.Store = true
		case index.KindDate:
			fm = bleve.NewDateTimeFieldMapping()
			fm.Store = f.Stored
		case index.KindInteger, index.KindFloat:
			fm = bleve.NewNumericFieldMapping()
			fm.Store = f.Stored
		case index.KindBoolean:
			fm = bleve.NewBooleanFieldMapping()
			fm.Store = f.Stored
		case index.KindNGram:
			if !grams[ngramAnalyzer] {
				if err := registerGramAnalyzer(im, ngramAnalyzer, ngram.Name, f.MinGram, f.MaxGram); err != nil {
					return nil, err
				}
				grams[ngramAnalyzer] = true
			}
			fm = bleve.NewTextFieldMapping()
			fm.Analyzer = ngramAnalyzer
			fm.Store = f.Stored
		case index.KindEdgeNGram:
			if !grams[edgeAnalyzer] {
				if err := registerGramAnalyzer(im, edgeAnalyzer, edgengram.Name, f.MinGram, f.MaxGram); err != nil {
					return nil, err
				}
				grams[edgeAnalyzer] = true
			}
			fm = bleve.NewTextFieldMapping()
			fm.Analyzer = edgeAnalyzer
			fm.Store = f.Stored
		default:
			return nil, fmt.Errorf("unsupported field kind %d for %q", f.Kind, f.Name)
		}
		doc.AddFieldMappingsAt(f.Name, fm)
	}

	im.DefaultMapping = doc
	im.DefaultAnalyzer = textAnalyzer
	return im, nil
}

func registerGramAnalyzer(im *mapping.IndexMappingImpl, name, filter string, min, max int) error {
	filterName := fmt.Sprintf("%s_%d_%d", filter, min, max)
	err := im.AddCustomTokenFilter(filterName, map[string]interface{}{
		"type": filter,
		"min":  float64(min),
		"max":  float64(max),
	})
	if err != nil {
		return fmt.Errorf("register %s filter: %w", filter, err)
	}
	err = im.AddCustomAnalyzer(name, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []interface{}{lowercase.Name, filterName},
	})
	if err != nil {
		return fmt.Errorf("register %s analyzer: %w", name, err)
	}
	return nil
}
