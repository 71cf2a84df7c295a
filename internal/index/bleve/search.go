package bleve

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/meridio/rankdex/internal/domain/search/plan"
	"github.com/meridio/rankdex/internal/index"
)

// Search executes a weighted plan and returns up to limit hits with their
// stored fields.
func (s *Store) Search(ctx context.Context, p plan.Plan, limit int) (*index.Result, error) {
	if err := s.ready(index.OpSearch); err != nil {
		return nil, err
	}
	if p.IsZero() || limit <= 0 {
		return &index.Result{}, nil
	}

	req := bleve.NewSearchRequestOptions(buildQuery(p), limit, 0, false)
	req.Fields = []string{"*"}
	res, err := s.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, &index.Error{Op: index.OpSearch, Err: err}
	}

	out := &index.Result{Total: int(res.Total), Hits: make([]index.Hit, 0, len(res.Hits))}
	for _, hit := range res.Hits {
		fields := make(map[string]string, len(hit.Fields))
		for name, val := range hit.Fields {
			fields[name] = fieldString(val)
		}
		out.Hits = append(out.Hits, index.Hit{ID: hit.ID, Score: hit.Score, Fields: fields})
	}
	return out, nil
}

// buildQuery renders the plan as a disjunction of the exact-title phrase,
// the boosted title terms and the per-field free-text clauses.
func buildQuery(p plan.Plan) query.Query {
	dis := bleve.NewDisjunctionQuery()
	title := p.TitleField()

	if p.Exact != "" {
		phrase := bleve.NewMatchPhraseQuery(p.Exact)
		phrase.SetField(title)
		phrase.SetBoost(plan.ExactTitleBoost)
		dis.AddQuery(phrase)

		terms := bleve.NewMatchQuery(p.Exact)
		terms.SetField(title)
		terms.SetBoost(plan.TermTitleBoost)
		terms.SetOperator(query.MatchQueryOperatorAnd)
		dis.AddQuery(terms)
	}

	for _, fc := range p.Fields {
		if fq := fieldQuery(p, fc); fq != nil {
			dis.AddQuery(fq)
		}
	}
	return dis
}

// fieldQuery builds one field's free-text clause: terms joined by the
// plan's operator, conjoined with any quoted phrases, boosted by the field
// boost.
func fieldQuery(p plan.Plan, fc plan.FieldClause) query.Query {
	var parts []query.Query
	if len(p.Terms) > 0 {
		mq := bleve.NewMatchQuery(strings.Join(p.Terms, " "))
		mq.SetField(fc.Field)
		if p.Or {
			mq.SetOperator(query.MatchQueryOperatorOr)
		} else {
			mq.SetOperator(query.MatchQueryOperatorAnd)
		}
		parts = append(parts, mq)
	}
	for _, ph := range p.Phrases {
		pq := bleve.NewMatchPhraseQuery(ph)
		pq.SetField(fc.Field)
		parts = append(parts, pq)
	}
	if len(parts) == 0 {
		return nil
	}
	conj := bleve.NewConjunctionQuery(parts...)
	if fc.Boost > 0 {
		conj.SetBoost(fc.Boost)
	}
	return conj
}

func fieldString(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			parts = append(parts, fieldString(e))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
