package interfaces

import (
	"context"

	"gh-repo-cache/internal/models"
)

//go:generate mockgen -package=mock -source=fetcher.go -destination=mock/fetcher.go

// Fetcher performs the network call for a logical request. Failures must be
// classified (not-found, transient, unexpected) via models.Failure so the
// orchestrator can pick the right recovery.
type Fetcher interface {
	Fetch(ctx context.Context, req models.LogicalRequest) ([]byte, error)
}
