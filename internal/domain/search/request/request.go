// Package request defines the validated search request value object.
package request

import (
	"fmt"
	"strings"
)

const (
	// DefaultPageSize is used when the caller does not specify one.
	DefaultPageSize = 10
	// MaxPageSize caps the page size.
	MaxPageSize = 100
	// MaxQueryLength caps the raw query length in bytes.
	MaxQueryLength = 1024
)

// Request is a validated search request (immutable value object). Page and
// page size are clamped rather than rejected; only an oversized query is an
// error.
type Request struct {
	query    string
	page     int
	pageSize int
	language string
}

// New validates and creates a Request. An empty query is allowed and yields
// an empty result page downstream.
func New(query string, page, pageSize int, language string) (Request, error) {
	query = strings.TrimSpace(query)
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d bytes)", MaxQueryLength)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Request{query: query, page: page, pageSize: pageSize, language: language}, nil
}

// Query returns the trimmed raw query.
func (r Request) Query() string { return r.query }

// Page returns the 1-based requested page.
func (r Request) Page() int { return r.page }

// PageSize returns the clamped page size.
func (r Request) PageSize() int { return r.pageSize }

// Language returns the requested language override, if any.
func (r Request) Language() string { return r.language }

// IsEmpty reports whether there is nothing to search for.
func (r Request) IsEmpty() bool { return r.query == "" }
