package interfaces

import (
	"context"
)

//go:generate mockgen -package=mock -source=vcs.go -destination=mock/vcs.go

// VersionControlClient is the local repository mutation surface the action
// layer drives after the cache supplies repository data. Errors propagate to
// the user independently of the cache.
type VersionControlClient interface {
	// Clone checks out the repository at url into path.
	Clone(ctx context.Context, url, path string) error

	// AddRemote registers a named remote on the repository at path.
	AddRemote(path, name, url string) error

	// Push pushes the current branch to the named remote.
	Push(ctx context.Context, path, remote string) error
}
