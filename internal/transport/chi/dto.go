package chi

import (
	"encoding/json"
	"net/http"
)

// ErrorCode classifies API errors for clients.
type ErrorCode string

const (
	CodeBadRequest         ErrorCode = "bad_request"
	CodeValidationFailed   ErrorCode = "validation_failed"
	CodeDocumentNotFound   ErrorCode = "document_not_found"
	CodeBackendUnavailable ErrorCode = "backend_unavailable"
	CodeInternalError      ErrorCode = "internal_error"
	CodeNotImplemented     ErrorCode = "not_implemented"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// UpsertDocumentRequest is the body of PUT /documents/{id} and the element
// type of batch upserts.
type UpsertDocumentRequest struct {
	ContentType string   `json:"content_type"`
	SourceID    string   `json:"source_id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Tags        []string `json:"tags"`
	Body        string   `json:"body"`
	URL         string   `json:"url"`
}

// BatchUpsertRequest is the body of POST /documents.
type BatchUpsertRequest struct {
	Documents []UpsertDocumentRequest `json:"documents"`
}

// SearchHit is one result item.
type SearchHit struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
	URL   string  `json:"url,omitempty"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Query     string      `json:"query"`
	Page      int         `json:"page"`
	PageCount int         `json:"page_count"`
	Total     int         `json:"total"`
	HasNext   bool        `json:"has_next"`
	Items     []SearchHit `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, msg string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: msg})
}
