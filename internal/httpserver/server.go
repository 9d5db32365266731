package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gh-repo-cache/internal/actions"
	"gh-repo-cache/internal/models"
	"gh-repo-cache/internal/orchestrator"
)

// Server represents the repo cache HTTP server
type Server struct {
	cache    *orchestrator.Orchestrator
	actions  *actions.Actions
	identity string
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a new repo cache HTTP server. identity is the acting user,
// applied to requests that do not name one.
func NewServer(cache *orchestrator.Orchestrator, actions *actions.Actions, identity string, logger *zap.Logger) *Server {
	return &Server{
		cache:    cache,
		actions:  actions,
		identity: identity,
		logger:   logger,
	}
}

// StartUnixSocket starts the HTTP server on a Unix socket
func (s *Server) StartUnixSocket(socketPath string) error {
	// Remove existing socket file
	if err := os.RemoveAll(socketPath); err != nil {
		s.logger.Warn("Failed to remove existing socket file", zap.String("path", socketPath), zap.Error(err))
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return err
	}

	// Set socket permissions (readable/writable by owner and group)
	if err := os.Chmod(socketPath, 0660); err != nil {
		s.logger.Warn("Failed to set socket permissions", zap.String("path", socketPath), zap.Error(err))
	}

	router := s.createRouter()

	s.server = &http.Server{
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting repo cache HTTP server on Unix socket", zap.String("socket_path", socketPath))
	return s.server.Serve(listener)
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping repo cache HTTP server")
	return s.server.Shutdown(ctx)
}

// createRouter creates and configures the HTTP router
func (s *Server) createRouter() *mux.Router {
	router := mux.NewRouter()

	// Cache endpoints
	router.HandleFunc("/v1/request", s.handleRequest).Methods("POST")
	router.HandleFunc("/v1/invalidate", s.handleInvalidate).Methods("POST")
	router.HandleFunc("/v1/offline", s.handleGetOffline).Methods("GET")
	router.HandleFunc("/v1/offline", s.handleSetOffline).Methods("POST")

	// Repository actions
	router.HandleFunc("/v1/actions/create", s.handleCreateRepo).Methods("POST")
	router.HandleFunc("/v1/actions/fork", s.handleForkRepo).Methods("POST")
	router.HandleFunc("/v1/actions/clone", s.handleCloneRepo).Methods("POST")
	router.HandleFunc("/v1/actions/fork-clone", s.handleForkClone).Methods("POST")

	// Cached repository reads
	router.HandleFunc("/v1/users/{owner}/repos", s.handleListRepos).Methods("GET")
	router.HandleFunc("/v1/repos/{owner}/{repo}", s.handleGetRepo).Methods("GET")
	router.HandleFunc("/v1/repos/{owner}/{repo}/issues", s.handleListIssues).Methods("GET")
	router.HandleFunc("/v1/repos/{owner}/{repo}/pulls", s.handleListPulls).Methods("GET")
	router.HandleFunc("/v1/repos/{owner}/{repo}/browse", s.handleBrowse).Methods("GET")

	// Health check
	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, map[string]interface{}{
		"status":  "healthy",
		"offline": s.cache.IsOffline(),
		"time":    time.Now().UTC(),
	})
}

// parseRequest parses JSON request body
func (s *Server) parseRequest(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	defer r.Body.Close()

	return json.Unmarshal(body, v)
}

// writeResponse writes JSON response
func (s *Server) writeResponse(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := map[string]interface{}{
		"success": false,
		"error":   message,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}

// writeFailure maps a classified failure to an HTTP status
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	s.writeErrorResponse(w, err.Error(), statusForError(err))
}

func statusForError(err error) int {
	switch models.KindOf(err) {
	case models.FailureNotFound:
		return http.StatusNotFound
	case models.FailureTransient:
		return http.StatusBadGateway
	case models.FailureUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
