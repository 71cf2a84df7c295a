package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/meridio/rankdex/internal/index"
)

// ftLanguages maps base languages to the FT.CREATE LANGUAGE argument.
var ftLanguages = map[string]string{
	"en": "english",
	"es": "spanish",
	"pt": "portuguese",
	"fr": "french",
	"it": "italian",
	"de": "german",
}

// EnsureSchema creates the FT index for def if it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context, def *index.Definition) error {
	args, err := buildCreateArgs(def)
	if err != nil {
		return &index.Error{Op: index.OpEnsureSchema, Err: err}
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if !isRedisErr(err, "index already exists") {
			return &index.Error{Op: index.OpEnsureSchema, Err: err}
		}
	}
	s.def = def
	return nil
}

// DropSchema removes the FT index by name, keeping the documents.
func (s *Store) DropSchema(ctx context.Context, name string) error {
	cmd := s.b().Arbitrary("FT.DROPINDEX").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return index.ErrIndexNotFound
		}
		return &index.Error{Op: index.OpDropSchema, Err: err}
	}
	if s.def != nil && s.def.Name == name {
		s.def = nil
	}
	return nil
}

func buildCreateArgs(def *index.Definition) ([]string, error) {
	if def.Name == "" {
		return nil, errors.New("index name is required")
	}
	if len(def.Fields) == 0 {
		return nil, errors.New("at least one field is required")
	}

	args := []string{def.Name, "ON", "HASH"}
	if def.KeyPrefix != "" {
		args = append(args, "PREFIX", "1", def.KeyPrefix)
	}
	if lang, ok := ftLanguages[def.Language]; ok {
		args = append(args, "LANGUAGE", lang)
	}
	args = append(args, "SCHEMA")

	indexed := 0
	for i := range def.Fields {
		fieldArgs := buildFieldArgs(&def.Fields[i])
		if len(fieldArgs) == 0 {
			continue // stored-only, lives in the hash without an index entry
		}
		indexed++
		args = append(args, fieldArgs...)
	}
	if indexed == 0 {
		return nil, errors.New("no indexable fields")
	}
	return args, nil
}

func buildFieldArgs(f *index.Field) []string {
	args := []string{f.Name}

	switch f.Kind {
	case index.KindIdentity, index.KindBoolean:
		args = append(args, "TAG")

	case index.KindKeywordSet:
		args = append(args, "TAG", "SEPARATOR", ",")

	case index.KindDate, index.KindInteger, index.KindFloat:
		args = append(args, "NUMERIC", "SORTABLE")

	// RediSearch has no n-gram fields; degrade to plain TEXT.
	case index.KindFullText, index.KindNGram, index.KindEdgeNGram:
		args = append(args, "TEXT")
		if f.Boost > 0 && f.Boost != 1.0 {
			args = append(args, "WEIGHT", strconv.FormatFloat(f.Boost, 'f', -1, 64))
		}
		if f.Sortable {
			args = append(args, "SORTABLE")
		}

	default: // KindStoredOnly
		return nil
	}
	return args
}
