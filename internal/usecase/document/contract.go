package document

import (
	"context"

	"github.com/meridio/rankdex/internal/index"
)

// Writer is the backend capability the document service consumes (ISP).
type Writer interface {
	Index(ctx context.Context, entries []index.Entry) error
	Delete(ctx context.Context, id string) error
}
