package redis

import (
	"github.com/redis/rueidis"

	"github.com/meridio/rankdex/internal/index"
)

// NewStoreForTest creates a Store with the provided rueidis client and an
// optional pre-installed definition (test-only).
func NewStoreForTest(c rueidis.Client, def *index.Definition) *Store {
	return &Store{client: c, def: def}
}
