// Package language resolves locale codes to the base language that drives
// analyzer selection and folding-profile lookup.
package language

import "strings"

// Default is the base language used when nothing else is configured.
const Default = "en"

// Base extracts the primary subtag of a locale code and lowercases it:
// "pt-BR" and "pt_BR" both yield "pt". An empty or blank code yields "".
func Base(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	return code
}

// Resolve walks a fallback chain of locale codes and returns the first
// non-empty base language, or Default when every code is blank.
func Resolve(codes ...string) string {
	for _, c := range codes {
		if b := Base(c); b != "" {
			return b
		}
	}
	return Default
}

// ForRerank picks the base language used for query/title comparison. An
// explicit override wins unless it is blank or "auto", in which case the
// regular fallback chain applies.
func ForRerank(override string, fallback ...string) string {
	if o := strings.TrimSpace(override); o != "" && !strings.EqualFold(o, "auto") {
		if b := Base(o); b != "" {
			return b
		}
	}
	return Resolve(fallback...)
}
