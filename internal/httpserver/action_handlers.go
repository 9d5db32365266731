package httpserver

import (
	"net/http"

	"github.com/gorilla/mux"

	"gh-repo-cache/internal/interfaces"
	"gh-repo-cache/internal/models"
)

// handleCreateRepo creates a repository for the acting user or an organization.
func (s *Server) handleCreateRepo(w http.ResponseWriter, r *http.Request) {
	var req CreateRepoPayload
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		s.writeErrorResponse(w, "Missing required field: name", http.StatusBadRequest)
		return
	}

	repo, err := s.actions.CreateRepository(r.Context(), interfaces.RepositorySpec{
		Name:        req.Name,
		Description: req.Description,
		Private:     req.Private,
		Org:         req.Org,
	})
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeResponse(w, &RepositoryResponse{Success: true, Repository: repo})
}

// handleForkRepo forks a repository into the acting user's account.
func (s *Server) handleForkRepo(w http.ResponseWriter, r *http.Request) {
	var req RepoActionPayload
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Owner == "" || req.Repo == "" {
		s.writeErrorResponse(w, "Missing required fields: owner, repo", http.StatusBadRequest)
		return
	}

	repo, err := s.actions.ForkRepository(r.Context(), req.Owner, req.Repo)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeResponse(w, &RepositoryResponse{Success: true, Repository: repo})
}

// handleCloneRepo clones a repository to a local path.
func (s *Server) handleCloneRepo(w http.ResponseWriter, r *http.Request) {
	var req RepoActionPayload
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Owner == "" || req.Repo == "" || req.Path == "" {
		s.writeErrorResponse(w, "Missing required fields: owner, repo, path", http.StatusBadRequest)
		return
	}

	if err := s.actions.CloneRepository(r.Context(), req.Owner, req.Repo, req.Path); err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeResponse(w, map[string]interface{}{"success": true})
}

// handleForkClone forks a repository and clones the fork with the source
// wired as the upstream remote.
func (s *Server) handleForkClone(w http.ResponseWriter, r *http.Request) {
	var req RepoActionPayload
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Owner == "" || req.Repo == "" || req.Path == "" {
		s.writeErrorResponse(w, "Missing required fields: owner, repo, path", http.StatusBadRequest)
		return
	}

	if err := s.actions.ForkAndClone(r.Context(), req.Owner, req.Repo, req.Path); err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeResponse(w, map[string]interface{}{"success": true})
}

// handleGetRepo serves repository metadata through the cache.
func (s *Server) handleGetRepo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	level, err := models.ParseFreshnessLevel(r.URL.Query().Get("freshness"))
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	repo, err := s.actions.GetRepository(r.Context(), vars["owner"], vars["repo"], level)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeResponse(w, &RepositoryResponse{Success: true, Repository: repo})
}

// handleListRepos serves a user's repository listing through the cache.
func (s *Server) handleListRepos(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	level, err := models.ParseFreshnessLevel(r.URL.Query().Get("freshness"))
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	repos, err := s.actions.ListRepositories(r.Context(), vars["owner"], level)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeResponse(w, map[string]interface{}{"success": true, "repositories": repos})
}

// handleListIssues serves a repository's open issues through the cache.
func (s *Server) handleListIssues(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	level, err := models.ParseFreshnessLevel(r.URL.Query().Get("freshness"))
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	issues, err := s.actions.ListIssues(r.Context(), vars["owner"], vars["repo"], level)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeResponse(w, map[string]interface{}{"success": true, "issues": issues})
}

// handleListPulls serves a repository's open pull requests through the cache.
func (s *Server) handleListPulls(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	level, err := models.ParseFreshnessLevel(r.URL.Query().Get("freshness"))
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	pulls, err := s.actions.ListPullRequests(r.Context(), vars["owner"], vars["repo"], level)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeResponse(w, map[string]interface{}{"success": true, "pull_requests": pulls})
}

// handleBrowse resolves a repository's web URL from cached metadata.
func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	url, err := s.actions.BrowseURL(r.Context(), vars["owner"], vars["repo"])
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeResponse(w, map[string]interface{}{"success": true, "url": url})
}
