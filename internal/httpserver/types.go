package httpserver

import (
	"encoding/json"

	"gh-repo-cache/internal/models"
)

// RequestPayload represents a logical cache request
type RequestPayload struct {
	Endpoint  string            `json:"endpoint"`
	Params    map[string]string `json:"params,omitempty"`
	Identity  string            `json:"identity,omitempty"`
	Freshness string            `json:"freshness,omitempty"` // cached-ok, fresh, force-refresh
}

// RequestResponse represents the outcome of a cache request
type RequestResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Key     string          `json:"key,omitempty"`
	Stale   bool            `json:"stale,omitempty"`
	Fetched bool            `json:"fetched,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// InvalidatePayload names a single key or a prefix to drop
type InvalidatePayload struct {
	Key    string `json:"key,omitempty"`
	Prefix string `json:"prefix,omitempty"`
}

// OfflinePayload toggles offline mode
type OfflinePayload struct {
	Offline bool `json:"offline"`
}

// CreateRepoPayload describes a repository to create
type CreateRepoPayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Private     bool   `json:"private,omitempty"`
	Org         string `json:"org,omitempty"`
}

// RepoActionPayload names a repository for fork/clone actions
type RepoActionPayload struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Path  string `json:"path,omitempty"` // clone destination
}

// RepositoryResponse wraps a single repository
type RepositoryResponse struct {
	Success    bool               `json:"success"`
	Repository *models.Repository `json:"repository,omitempty"`
	Error      string             `json:"error,omitempty"`
}
