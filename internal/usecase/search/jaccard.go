package search

// Jaccard returns the set similarity |A∩B| / |A∪B| of two token slices,
// ignoring duplicates. Either side empty yields 0.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	as := make(map[string]struct{}, len(a))
	for _, t := range a {
		as[t] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	inter := 0
	for _, t := range b {
		if _, seen := bs[t]; seen {
			continue
		}
		bs[t] = struct{}{}
		if _, ok := as[t]; ok {
			inter++
		}
	}
	union := len(as) + len(bs) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
