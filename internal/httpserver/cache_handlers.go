package httpserver

import (
	"fmt"
	"net/http"

	"gh-repo-cache/internal/models"
)

// handleRequest serves a logical request through the cache orchestrator.
func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	var req RequestPayload
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}

	endpoint := models.Endpoint(req.Endpoint)
	if !endpoint.IsKnown() {
		s.writeErrorResponse(w, fmt.Sprintf("Unknown endpoint: %s", req.Endpoint), http.StatusBadRequest)
		return
	}

	level, err := models.ParseFreshnessLevel(req.Freshness)
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	identity := req.Identity
	if identity == "" {
		identity = s.identity
	}

	result, err := s.cache.Request(r.Context(), models.NewLogicalRequest(endpoint, req.Params, identity), level)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeResponse(w, &RequestResponse{
		Success: true,
		Data:    result.Value,
		Key:     result.Key,
		Stale:   result.Stale,
		Fetched: result.Fetched,
	})
}

// handleInvalidate drops a single key or every key under a prefix.
func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	var req InvalidatePayload
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}

	switch {
	case req.Key != "":
		s.cache.Invalidate(req.Key)
	case req.Prefix != "":
		s.cache.InvalidatePrefix(req.Prefix)
	default:
		s.writeErrorResponse(w, "Missing required field: key or prefix", http.StatusBadRequest)
		return
	}

	s.writeResponse(w, map[string]interface{}{"success": true})
}

// handleGetOffline reports the offline toggle.
func (s *Server) handleGetOffline(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, &OfflinePayload{Offline: s.cache.IsOffline()})
}

// handleSetOffline flips the offline toggle.
func (s *Server) handleSetOffline(w http.ResponseWriter, r *http.Request) {
	var req OfflinePayload
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}

	s.cache.SetOffline(req.Offline)
	s.writeResponse(w, &OfflinePayload{Offline: s.cache.IsOffline()})
}
