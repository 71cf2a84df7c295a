package analysis

import (
	"github.com/blevesearch/bleve/v2/analysis/lang/de"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/lang/es"
	"github.com/blevesearch/bleve/v2/analysis/lang/fr"
	"github.com/blevesearch/bleve/v2/analysis/lang/it"
	"github.com/blevesearch/bleve/v2/analysis/lang/pt"
	"github.com/blevesearch/bleve/v2/analysis/token/porter"

	"github.com/meridio/rankdex/internal/language"
)

// Chain names the stopword and stemmer filters for one supported language.
type Chain struct {
	Language string
	Stop     string
	Stem     string
	Fallback bool // requested language was unsupported, English applied
}

var chains = map[string]Chain{
	"en": {Language: "en", Stop: en.StopName, Stem: porter.Name},
	"es": {Language: "es", Stop: es.StopName, Stem: es.LightStemmerName},
	"pt": {Language: "pt", Stop: pt.StopName, Stem: pt.LightStemmerName},
	"fr": {Language: "fr", Stop: fr.StopName, Stem: fr.LightStemmerName},
	"it": {Language: "it", Stop: it.StopName, Stem: it.LightStemmerName},
	"de": {Language: "de", Stop: de.StopName, Stem: de.LightStemmerName},
}

// ResolveChain returns the filter chain for a base language, falling back to
// English when the language has no registered stopwords or stemmer.
func ResolveChain(baseLang string) Chain {
	if ch, ok := chains[baseLang]; ok {
		return ch
	}
	ch := chains[language.Default]
	ch.Fallback = true
	return ch
}
