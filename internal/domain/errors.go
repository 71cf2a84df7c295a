// Package domain holds the shared error taxonomy.
package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidSchema signals an invalid field schema definition.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrNoSearchableFields signals a schema with nothing beyond the
	// mandatory identity fields.
	ErrNoSearchableFields = errors.New("no fields to search; schema defines only identity fields")
	// ErrInvalidQuery signals a query that cannot be planned.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrBackendUnavailable signals that the index backend cannot be reached.
	ErrBackendUnavailable = errors.New("search backend unavailable")
	// ErrNotImplemented signals an unimplemented feature.
	ErrNotImplemented = errors.New("not implemented")
)
