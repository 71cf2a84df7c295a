package folding

// Overrides is the configuration shape for one folding profile before
// merging: characters to keep and substring replacements to apply.
type Overrides struct {
	Preserve []string          `yaml:"preserve"`
	Replace  map[string]string `yaml:"replace"`
}

// Resolver merges the default profile with per-language overrides.
type Resolver struct {
	def      Overrides
	langs    map[string]Overrides
	keepEnye *bool
}

// NewResolver builds a resolver. keepEnye, when non-nil, forces "ñ" into or
// out of every resolved preserve set after merging; nil leaves the merged
// profiles untouched.
func NewResolver(def Overrides, langs map[string]Overrides, keepEnye *bool) *Resolver {
	return &Resolver{def: def, langs: langs, keepEnye: keepEnye}
}

// Resolve returns the effective profile for a base language: the default
// preserve set united with the language's, and the default replace map
// overlaid with the language's entries. The enye toggle is applied last.
func (r *Resolver) Resolve(baseLang string) Profile {
	preserve := append([]string{}, r.def.Preserve...)
	replace := make(map[string]string, len(r.def.Replace))
	for k, v := range r.def.Replace {
		replace[k] = v
	}
	if ov, ok := r.langs[baseLang]; ok {
		preserve = append(preserve, ov.Preserve...)
		for k, v := range ov.Replace {
			replace[k] = v
		}
	}
	if r.keepEnye != nil {
		if *r.keepEnye {
			preserve = append(preserve, "ñ")
		} else {
			preserve = withoutEnye(preserve)
		}
	}
	return NewProfile(preserve, replace)
}

func withoutEnye(preserve []string) []string {
	out := preserve[:0]
	for _, s := range preserve {
		if s != "ñ" && s != "Ñ" {
			out = append(out, s)
		}
	}
	return out
}
