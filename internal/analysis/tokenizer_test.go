package analysis

import (
	"reflect"
	"testing"
)

func TestResolveChainSupported(t *testing.T) {
	ch := ResolveChain("es")
	if ch.Language != "es" || ch.Fallback {
		t.Errorf("got %+v", ch)
	}
}

func TestResolveChainFallback(t *testing.T) {
	ch := ResolveChain("xx")
	if ch.Language != "en" || !ch.Fallback {
		t.Errorf("got %+v", ch)
	}
}

func TestTokenizeEnglish(t *testing.T) {
	tk := NewTokenizer("en", nil, nil)
	got := tk.Tokenize("The Quick Brown Foxes")
	// "the" is an English stopword; "foxes" stems to "fox".
	want := []string{"quick", "brown", "fox"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	tk := NewTokenizer("en", nil, nil)
	if got := tk.Tokenize(""); len(got) != 0 {
		t.Errorf("got %v", got)
	}
}

func TestFilterDropsShortAndStop(t *testing.T) {
	tk := NewTokenizer("en", []string{"acme", "corp"}, []string{"corp"})
	got := tk.Filter([]string{"a", "acme", "corp", "report", "x"})
	want := []string{"corp", "report"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFallbackRegexp(t *testing.T) {
	tk := &Tokenizer{chain: ResolveChain("en")}
	got := tk.Tokenize("Hello, wörld 42!")
	want := []string{"hello", "wörld", "42"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEffectiveStopwords(t *testing.T) {
	set := effectiveStopwords([]string{"Uno", "dos", ""}, []string{"DOS"})
	if _, ok := set["uno"]; !ok {
		t.Error("uno missing")
	}
	if _, ok := set["dos"]; ok {
		t.Error("dos should be removed")
	}
	if len(set) != 1 {
		t.Errorf("set = %v", set)
	}
}
