package folding

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// placeholderBase is the start of the Unicode private use area. Preserved
// runes are swapped to placeholders there while diacritics are stripped.
const placeholderBase = 0xE000

// Normalizer lowercases text, applies a profile's replace map, and strips
// combining marks while keeping the profile's preserve set intact.
// A Normalizer is safe for concurrent use.
type Normalizer struct {
	profile Profile
	pairs   [][2]string // replace map in sorted key order
	protect *strings.Replacer
	restore *strings.Replacer
}

// NewNormalizer precomputes the replacement tables for a profile.
func NewNormalizer(p Profile) *Normalizer {
	n := &Normalizer{profile: p}

	keys := make([]string, 0, len(p.replace))
	for k := range p.replace {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.pairs = append(n.pairs, [2]string{k, p.replace[k]})
	}

	if len(p.preserve) > 0 {
		fwd := make([]string, 0, len(p.preserve)*2)
		back := make([]string, 0, len(p.preserve)*2)
		for i, r := range p.preserve {
			ph := string(rune(placeholderBase + i))
			fwd = append(fwd, string(r), ph)
			back = append(back, ph, string(r))
		}
		n.protect = strings.NewReplacer(fwd...)
		n.restore = strings.NewReplacer(back...)
	}
	return n
}

// Profile returns the profile this normalizer was built from.
func (n *Normalizer) Profile() Profile { return n.profile }

// Normalize folds a string: lowercase, replace-map pass, then diacritic
// stripping with the preserve set protected by private-use placeholders.
// The result contains no placeholder runes and the operation is idempotent
// as long as replace targets contain no replace sources.
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}
	text := strings.ToLower(s)
	for _, p := range n.pairs {
		text = strings.ReplaceAll(text, p[0], p[1])
	}
	if n.protect != nil {
		text = n.protect.Replace(text)
	}
	text = stripMarks(text)
	if n.restore != nil {
		text = n.restore.Replace(text)
	}
	return text
}

// stripMarks removes combining marks via NFD decomposition and recomposes.
// The transform chain keeps per-call state, so build it fresh each time.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
