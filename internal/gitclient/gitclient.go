package gitclient

import (
	"context"
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"go.uber.org/zap"

	"gh-repo-cache/internal/interfaces"
)

// Ensure Client implements interfaces.VersionControlClient
var _ interfaces.VersionControlClient = (*Client)(nil)

// Client drives local repository mutations with go-git. It is a thin adapter:
// the action layer decides what to do, this only does it.
type Client struct {
	logger *zap.Logger
}

// New creates a Client.
func New(logger *zap.Logger) *Client {
	return &Client{logger: logger}
}

// Clone checks out the repository at url into path.
func (c *Client) Clone(ctx context.Context, url, path string) error {
	c.logger.Info("Cloning repository", zap.String("url", url), zap.String("path", path))

	_, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{URL: url})
	if err != nil {
		return fmt.Errorf("cloning %s: %w", url, err)
	}
	return nil
}

// AddRemote registers a named remote on the repository at path. Registering a
// remote that already exists with the same URL is not an error.
func (c *Client) AddRemote(path, name, url string) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("opening repository at %s: %w", path, err)
	}

	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	if err != nil {
		if errors.Is(err, git.ErrRemoteExists) {
			existing, remoteErr := repo.Remote(name)
			if remoteErr == nil && len(existing.Config().URLs) > 0 && existing.Config().URLs[0] == url {
				return nil
			}
		}
		return fmt.Errorf("adding remote %s: %w", name, err)
	}

	c.logger.Info("Added remote", zap.String("path", path), zap.String("remote", name), zap.String("url", url))
	return nil
}

// Push pushes the current branch to the named remote. Already-up-to-date is
// not an error.
func (c *Client) Push(ctx context.Context, path, remote string) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("opening repository at %s: %w", path, err)
	}

	err = repo.PushContext(ctx, &git.PushOptions{RemoteName: remote})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("pushing to %s: %w", remote, err)
	}
	return nil
}
