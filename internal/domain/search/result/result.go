// Package result defines search candidates and result pages.
package result

// Candidate is one scored hit returned by a backend, before or after
// reranking.
type Candidate struct {
	id     string
	title  string
	score  float64
	fields map[string]string
}

// NewCandidate creates a candidate. fields holds the stored values keyed by
// field name and is retained without copying.
func NewCandidate(id, title string, score float64, fields map[string]string) Candidate {
	return Candidate{id: id, title: title, score: score, fields: fields}
}

// ID returns the index key of the hit.
func (c Candidate) ID() string { return c.id }

// Title returns the stored title.
func (c Candidate) Title() string { return c.title }

// Score returns the backend relevance score.
func (c Candidate) Score() float64 { return c.score }

// Field returns a stored field value, or "".
func (c Candidate) Field(name string) string { return c.fields[name] }

// StoredFields returns a copy of all stored fields.
func (c Candidate) StoredFields() map[string]string {
	out := make(map[string]string, len(c.fields))
	for k, v := range c.fields {
		out[k] = v
	}
	return out
}

// Page is one page of reranked results.
type Page struct {
	items     []Candidate
	number    int
	pageCount int
	total     int
}

// NewPage creates a result page. number is 1-based.
func NewPage(items []Candidate, number, pageCount, total int) Page {
	return Page{items: items, number: number, pageCount: pageCount, total: total}
}

// Empty returns the canonical empty page.
func Empty() Page { return Page{number: 1, pageCount: 1} }

// Items returns the candidates on this page.
func (p Page) Items() []Candidate { return p.items }

// Number returns the 1-based page number.
func (p Page) Number() int { return p.number }

// PageCount returns the number of pages in the reranked pool.
func (p Page) PageCount() int { return p.pageCount }

// Total returns the number of candidates in the reranked pool.
func (p Page) Total() int { return p.total }

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool { return p.number < p.pageCount }

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool { return p.number > 1 }
