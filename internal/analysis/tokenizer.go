package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"

	bleveanalysis "github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/registry"
)

// wordRe is the fallback word splitter used when the language chain cannot
// be assembled.
var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenizer splits text into comparison tokens through the language's
// analyzer chain, with a plain word-regexp fallback. It also applies the
// configured extra stopword set and drops single-character tokens.
type Tokenizer struct {
	chain     Chain
	tokenizer bleveanalysis.Tokenizer
	filters   []bleveanalysis.TokenFilter
	stop      map[string]struct{}
}

// NewTokenizer resolves the analyzer chain for a base language. stopAdd and
// stopRemove adjust the extra stopword set: effective = add minus remove.
func NewTokenizer(baseLang string, stopAdd, stopRemove []string) *Tokenizer {
	t := &Tokenizer{
		chain: ResolveChain(baseLang),
		stop:  effectiveStopwords(stopAdd, stopRemove),
	}

	cache := registry.NewCache()
	tok, err := cache.TokenizerNamed(unicode.Name)
	if err != nil {
		return t
	}
	var filters []bleveanalysis.TokenFilter
	for _, name := range []string{lowercase.Name, t.chain.Stop, t.chain.Stem} {
		f, err := cache.TokenFilterNamed(name)
		if err != nil {
			return t // regexp fallback
		}
		filters = append(filters, f)
	}
	t.tokenizer = tok
	t.filters = filters
	return t
}

// Language returns the base language the chain was resolved to.
func (t *Tokenizer) Language() string { return t.chain.Language }

// Tokenize splits text into raw analyzer tokens without stopword or length
// filtering.
func (t *Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	if t.tokenizer == nil {
		return wordRe.FindAllString(strings.ToLower(text), -1)
	}
	stream := t.tokenizer.Tokenize([]byte(text))
	for _, f := range t.filters {
		stream = f.Filter(stream)
	}
	out := make([]string, 0, len(stream))
	for _, tok := range stream {
		out = append(out, string(tok.Term))
	}
	return out
}

// Filter drops single-character tokens and extra stopwords.
func (t *Tokenizer) Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) <= 1 {
			continue
		}
		if _, ok := t.stop[tok]; ok {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Terms is Tokenize followed by Filter.
func (t *Tokenizer) Terms(text string) []string {
	return t.Filter(t.Tokenize(text))
}

func effectiveStopwords(add, remove []string) map[string]struct{} {
	set := make(map[string]struct{}, len(add))
	for _, w := range add {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			set[w] = struct{}{}
		}
	}
	for _, w := range remove {
		delete(set, strings.ToLower(strings.TrimSpace(w)))
	}
	return set
}
