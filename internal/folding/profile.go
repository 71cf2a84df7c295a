// Package folding implements accent folding with configurable per-language
// profiles: a preserve set of runes that survive diacritic stripping and a
// replace map applied before it.
package folding

import (
	"sort"
	"strings"
)

// Profile holds the folding rules for one base language. Profiles are
// immutable once built.
type Profile struct {
	preserve []rune
	replace  map[string]string
}

// NewProfile builds a profile from preserve characters and a replace map.
// Inputs are lowercased; multi-rune preserve entries contribute each rune.
// The preserve set is deduplicated and kept sorted so that placeholder
// assignment is deterministic.
func NewProfile(preserve []string, replace map[string]string) Profile {
	seen := make(map[rune]struct{})
	var runes []rune
	for _, s := range preserve {
		for _, r := range strings.ToLower(s) {
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			runes = append(runes, r)
		}
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	rep := make(map[string]string, len(replace))
	for src, dst := range replace {
		src = strings.ToLower(src)
		if src == "" {
			continue
		}
		rep[src] = strings.ToLower(dst)
	}
	return Profile{preserve: runes, replace: rep}
}

// Preserve returns the preserved runes in sorted order.
func (p Profile) Preserve() []rune {
	out := make([]rune, len(p.preserve))
	copy(out, p.preserve)
	return out
}

// PreserveStrings returns the preserve set as one string per rune.
func (p Profile) PreserveStrings() []string {
	out := make([]string, len(p.preserve))
	for i, r := range p.preserve {
		out[i] = string(r)
	}
	return out
}

// Replace returns a copy of the replace map.
func (p Profile) Replace() map[string]string {
	out := make(map[string]string, len(p.replace))
	for k, v := range p.replace {
		out[k] = v
	}
	return out
}

// IsZero reports whether the profile carries no rules at all.
func (p Profile) IsZero() bool {
	return len(p.preserve) == 0 && len(p.replace) == 0
}
