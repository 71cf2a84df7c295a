package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/meridio/rankdex/internal/domain/search/plan"
	"github.com/meridio/rankdex/internal/index"
)

// Search executes a weighted plan via FT.SEARCH with BM25 scores. The
// clause weights require query dialect 2.
func (s *Store) Search(ctx context.Context, p plan.Plan, limit int) (*index.Result, error) {
	if s.def == nil {
		return nil, &index.Error{Op: index.OpSearch, Err: index.ErrIndexNotFound}
	}
	if p.IsZero() || limit <= 0 {
		return &index.Result{}, nil
	}

	queryStr := renderQuery(p)
	if queryStr == "" {
		return &index.Result{}, nil
	}

	args := []string{
		s.def.Name, queryStr,
		"WITHSCORES",
		"LIMIT", "0", strconv.Itoa(limit),
		"DIALECT", "2",
	}
	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &index.Error{Op: index.OpSearch, Err: err}
	}
	return parseSearchResult(raw, s.def.KeyPrefix)
}

// Count returns the document count via FT.SEARCH with LIMIT 0 0.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s.def == nil {
		return 0, &index.Error{Op: index.OpCount, Err: index.ErrIndexNotFound}
	}
	cmd := s.b().Arbitrary("FT.SEARCH").Args(s.def.Name, "*", "LIMIT", "0", "0").Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, &index.Error{Op: index.OpCount, Err: err}
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

// renderQuery builds the weighted FT.SEARCH query string: the exact-title
// phrase and the single-term title clause carry explicit weights, the
// multi-field clause relies on the schema's field weights.
func renderQuery(p plan.Plan) string {
	var clauses []string

	if p.Exact != "" {
		title := p.TitleField()
		esc := escapeQuery(p.Exact)
		clauses = append(clauses,
			fmt.Sprintf(`(@%s:"%s")=>{$weight: %g}`, title, esc, plan.ExactTitleBoost),
			fmt.Sprintf(`(@%s:(%s))=>{$weight: %g}`, title, esc, plan.TermTitleBoost),
		)
	}

	if free := renderFreeText(p); free != "" && len(p.Fields) > 0 {
		names := make([]string, len(p.Fields))
		for i, fc := range p.Fields {
			names[i] = fc.Field
		}
		clauses = append(clauses, fmt.Sprintf("(@%s:%s)", strings.Join(names, "|"), free))
	}
	return strings.Join(clauses, " | ")
}

func renderFreeText(p plan.Plan) string {
	parts := make([]string, 0, len(p.Terms)+len(p.Phrases))
	for _, t := range p.Terms {
		parts = append(parts, escapeQuery(t))
	}
	for _, ph := range p.Phrases {
		parts = append(parts, `"`+escapeQuery(ph)+`"`)
	}
	if len(parts) == 0 {
		return ""
	}
	sep := " "
	if p.Or {
		sep = "|"
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// parseSearchResult walks the RESP2 3-stride reply:
// [total, key1, score1, fields1, key2, score2, fields2, ...].
func parseSearchResult(raw []rueidis.RedisMessage, keyPrefix string) (*index.Result, error) {
	if len(raw) == 0 {
		return &index.Result{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &index.Result{}, nil
	}

	hits := make([]index.Hit, 0, total)
	for i := 1; i+2 < len(raw); i += 3 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		scoreStr, err := raw[i+1].ToString()
		if err != nil {
			continue
		}
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil {
			continue
		}
		fieldsArr, err := raw[i+2].ToArray()
		if err != nil {
			continue
		}
		hits = append(hits, index.Hit{
			ID:     strings.TrimPrefix(key, keyPrefix),
			Score:  score,
			Fields: parseFieldPairs(fieldsArr),
		})
	}

	return &index.Result{Total: int(total), Hits: hits}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
)
