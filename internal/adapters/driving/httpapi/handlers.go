package httpapi

import (
	"context"
	"errors"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/logger"
)

// healthResponse is the body of GET /health. Corpus is set only while a
// snapshot is cached; health checks never build one.
type healthResponse struct {
	Status string              `json:"status"`
	Corpus *domain.CorpusStats `json:"corpus,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{Status: "ok", Corpus: s.ports.Recommend.CachedStats()})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	results, err := s.ports.Catalog.Search(ctx, req.Query, req.Limit)
	if err != nil {
		respondServiceError(w, r, "search products", err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	detail, err := s.ports.Catalog.Get(ctx, id)
	if err != nil {
		respondServiceError(w, r, "get product", err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	req, err := parseRecommendationsRequest(r)
	if err != nil {
		s.metrics.observeRecommendation("unknown", "invalid", 0)
		respondError(w, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	sel := req.Selection()
	mode := "default"
	if sel.Mode != "" {
		mode = sel.Mode.String()
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	recs, err := s.ports.Recommend.Recommend(ctx, req.ProductID, sel)
	if err != nil {
		outcome := "error"
		if errors.Is(err, domain.ErrInvalidSelection) {
			outcome = "invalid"
		}
		s.metrics.observeRecommendation(mode, outcome, 0)
		respondServiceError(w, r, "recommend", err)
		return
	}

	outcome := "ok"
	if len(recs) == 0 {
		outcome = "empty"
	}
	s.metrics.observeRecommendation(mode, outcome, len(recs))
	respondJSON(w, http.StatusOK, recs)
}

// respondServiceError maps domain errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidSelection), errors.Is(err, domain.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, codeInvalidParameter, err.Error())
	case errors.Is(err, domain.ErrCatalogUnavailable):
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, err.Error())
	default:
		logger.Error("http: %s [%s]: %v", op, chimiddleware.GetReqID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}
