package interfaces

import (
	"context"

	"gh-repo-cache/internal/models"
)

//go:generate mockgen -package=mock -source=writer.go -destination=mock/writer.go

// RepositorySpec describes a repository to create.
type RepositorySpec struct {
	Name        string
	Description string
	Private     bool
	Org         string // create under this organization when set
}

// GitHubWriter covers the mutating GitHub operations the action layer needs.
// Mutations bypass the cache; the action layer invalidates affected prefixes
// afterwards.
type GitHubWriter interface {
	CreateRepository(ctx context.Context, spec RepositorySpec) (*models.Repository, error)
	ForkRepository(ctx context.Context, owner, repo string) (*models.Repository, error)
}
