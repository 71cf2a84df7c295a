// Package chi implements the HTTP API on the chi router.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/meridio/rankdex/internal/domain"
	domdoc "github.com/meridio/rankdex/internal/domain/document"
	"github.com/meridio/rankdex/internal/domain/search/request"
	documentuc "github.com/meridio/rankdex/internal/usecase/document"
	searchuc "github.com/meridio/rankdex/internal/usecase/search"
)

const maxBatchSize = 100

// Pinger reports backend liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server handles the rankdex HTTP API.
type Server struct {
	search        *searchuc.Service
	documents     *documentuc.Service
	health        Pinger
	backendName   string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	documents *documentuc.Service,
	health Pinger,
	backendName string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:      search,
		documents:   documents,
		health:      health,
		backendName: backendName,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, CodeDocumentNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeDocumentNotFound),
		sentinelHandler(domain.ErrBackendUnavailable, http.StatusServiceUnavailable, CodeBackendUnavailable),
		sentinelHandler(domain.ErrNotImplemented, http.StatusNotImplemented, CodeNotImplemented),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", s.Search)
		r.Post("/documents", s.BatchUpsertDocuments)
		r.Put("/documents/{id}", s.UpsertDocument)
		r.Delete("/documents/{id}", s.DeleteDocument)
	})
}

// Search handles GET /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := intParam(q.Get("page"))
	pageSize := intParam(q.Get("page_size"))

	req, err := request.New(q.Get("q"), page, pageSize, q.Get("language"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	res, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]SearchHit, 0, len(res.Items()))
	for _, c := range res.Items() {
		items = append(items, SearchHit{
			ID:    c.ID(),
			Title: c.Title(),
			Score: c.Score(),
			URL:   c.Field("url"),
		})
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		Query:     req.Query(),
		Page:      res.Number(),
		PageCount: res.PageCount(),
		Total:     res.Total(),
		HasNext:   res.HasNext(),
		Items:     items,
	})
}

// UpsertDocument handles PUT /api/v1/documents/{id}.
func (s *Server) UpsertDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpsertDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, err := documentFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}
	if doc.ID() != id {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			"document id "+doc.ID()+" does not match path id "+id)
		return
	}

	if err := s.documents.Upsert(r.Context(), doc); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BatchUpsertDocuments handles POST /api/v1/documents.
func (s *Server) BatchUpsertDocuments(w http.ResponseWriter, r *http.Request) {
	var req BatchUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Documents) == 0 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "documents must not be empty")
		return
	}
	if len(req.Documents) > maxBatchSize {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			"batch size exceeds maximum of "+strconv.Itoa(maxBatchSize))
		return
	}

	docs := make([]domdoc.Document, 0, len(req.Documents))
	for i, d := range req.Documents {
		doc, err := documentFromRequest(d)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeValidationFailed,
				"document "+strconv.Itoa(i)+": "+err.Error())
			return
		}
		docs = append(docs, doc)
	}

	if err := s.documents.UpsertBatch(r.Context(), docs); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteDocument handles DELETE /api/v1/documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.documents.Remove(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if err := s.health.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:  "unavailable",
			Backend: s.backendName,
		})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Backend: s.backendName})
}

func documentFromRequest(req UpsertDocumentRequest) (domdoc.Document, error) {
	return domdoc.New(req.ContentType, req.SourceID, req.Title, req.Slug, req.Tags, req.Body, req.URL)
}

func intParam(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// handleDomainError maps domain errors to HTTP responses.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := err.Error()
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("unhandled domain error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

// sentinelHandler builds an errorHandler matching one sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}
