package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"

	"github.com/meridio/rankdex/internal/index"
)

// Index stores entries as hashes under the definition's key prefix in a
// single DoMulti round-trip. RediSearch picks them up via the index prefix.
func (s *Store) Index(ctx context.Context, entries []index.Entry) error {
	if s.def == nil {
		return &index.Error{Op: index.OpIndex, Err: index.ErrIndexNotFound}
	}
	if len(entries) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, len(entries))
	for i, e := range entries {
		cmd := s.b().Hset().Key(s.key(e.ID)).FieldValue()
		for k, v := range e.Fields {
			cmd = cmd.FieldValue(k, s.render(k, v))
		}
		cmds[i] = cmd.Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	for i, res := range results {
		if err := res.Error(); err != nil {
			return &index.Error{Op: index.OpIndex, Err: fmt.Errorf("id %s: %w", entries[i].ID, err)}
		}
	}
	return nil
}

// Delete removes a document hash. Deleting an absent ID is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	if s.def == nil {
		return &index.Error{Op: index.OpDelete, Err: index.ErrIndexNotFound}
	}
	cmd := s.b().Del().Key(s.key(id)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &index.Error{Op: index.OpDelete, Err: err}
	}
	return nil
}

func (s *Store) key(id string) string {
	return s.def.KeyPrefix + id
}

// render converts values whose index representation differs from the stored
// string: dates become epoch seconds for the NUMERIC index.
func (s *Store) render(name, val string) string {
	f, ok := s.def.Field(name)
	if !ok {
		return val
	}
	if f.Kind == index.KindDate {
		if t, err := time.Parse(time.RFC3339, val); err == nil {
			return strconv.FormatInt(t.Unix(), 10)
		}
	}
	return val
}
