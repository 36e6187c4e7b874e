package server

import (
	"net/http"

	"github.com/jonathan/leadgen/internal/corpus"
	"github.com/jonathan/leadgen/internal/discovery"
	"github.com/jonathan/leadgen/internal/linkedin"
	"github.com/jonathan/leadgen/internal/types"
)

// discoveryRequest is the body of POST /api/search.
type discoveryRequest struct {
	City     string `json:"city" validate:"required"`
	Category string `json:"category" validate:"required"`
	Keyword  string `json:"keyword"`
	Mode     string `json:"mode" validate:"omitempty,oneof=strict balanced fast"`
}

// handleDiscovery runs LLM merchant discovery for a city and category.
func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	if s.discovery == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "discovery is not configured")
		return
	}

	var req discoveryRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	merchants, err := s.discovery.GenerateMerchants(r.Context(), discovery.Request{
		City:     req.City,
		Category: req.Category,
		Keyword:  req.Keyword,
		Mode:     discovery.Mode(req.Mode),
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"merchants": merchants,
		"total":     len(merchants),
	})
}

// emailRequest is the body of POST /api/generate-email.
type emailRequest struct {
	Merchant types.Merchant `json:"merchant"`
	Language string         `json:"language"`
}

func (s *Server) handleGenerateEmail(w http.ResponseWriter, r *http.Request) {
	if s.drafter == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "email drafting is not configured")
		return
	}

	var req emailRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if req.Merchant.Name == "" {
		s.errorResponse(w, http.StatusBadRequest, "merchant name is required")
		return
	}

	draft, err := s.drafter.Draft(r.Context(), req.Merchant, req.Language)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"email": draft})
}

// handleGetCorpus returns every merchant in the loaded corpus.
func (s *Server) handleGetCorpus(w http.ResponseWriter, _ *http.Request) {
	snap, err := s.loader.LoadAll()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"merchants": snap.Merchants,
		"total":     snap.MerchantCount,
		"cities":    snap.CityCount,
	})
}

// handleCorpusSearch answers GET /api/corpus/search with city, category and
// keyword query parameters.
func (s *Server) handleCorpusSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results := s.loader.Search(corpus.Filters{
		City:     q.Get("city"),
		Category: q.Get("category"),
		Keyword:  q.Get("keyword"),
	})

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"results": results,
		"total":   len(results),
	})
}

func (s *Server) handleCorpusByCity(w http.ResponseWriter, r *http.Request) {
	city := r.PathValue("name")
	if city == "" {
		s.errorResponse(w, http.StatusBadRequest, "city name is required")
		return
	}

	merchants := s.loader.SearchByCity(city)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"city":      city,
		"merchants": merchants,
		"total":     len(merchants),
	})
}

func (s *Server) handleCacheInfo(w http.ResponseWriter, _ *http.Request) {
	info := s.loader.CacheInfo()
	if info == nil {
		s.jsonResponse(w, http.StatusOK, map[string]any{"loaded": false})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"loaded": true, "cache": info})
}

func (s *Server) handleClearCache(w http.ResponseWriter, _ *http.Request) {
	if err := s.loader.ClearCache(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "cache cleared"})
}

func (s *Server) handleReload(w http.ResponseWriter, _ *http.Request) {
	snap, err := s.loader.Reload()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":    "reloaded",
		"merchants": snap.MerchantCount,
		"cities":    snap.CityCount,
	})
}

// linkedinSearchRequest is the body of POST /api/linkedin/search.
type linkedinSearchRequest struct {
	Name    string `json:"name" validate:"required"`
	Founder string `json:"founder"`
	City    string `json:"city"`
}

func (s *Server) handleLinkedInSearch(w http.ResponseWriter, r *http.Request) {
	if s.resolver == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "linkedin search is not configured")
		return
	}

	var req linkedinSearchRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := s.resolver.SearchAll(r.Context(), req.Name, req.Founder, req.City)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, pair)
}

// linkedinBatchRequest is the body of POST /api/linkedin/batch.
type linkedinBatchRequest struct {
	Merchants []types.Merchant `json:"merchants" validate:"required,min=1,dive"`
}

func (s *Server) handleLinkedInBatch(w http.ResponseWriter, r *http.Request) {
	if s.resolver == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "linkedin search is not configured")
		return
	}

	var req linkedinBatchRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	enriched := s.resolver.BatchSearch(r.Context(), req.Merchants, linkedin.BatchOptions{
		Delay: s.searchDelay,
	})

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"merchants": enriched,
		"total":     len(enriched),
	})
}
