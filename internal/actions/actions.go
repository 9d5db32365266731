package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"gh-repo-cache/internal/interfaces"
	"gh-repo-cache/internal/keycodec"
	"gh-repo-cache/internal/models"
	"gh-repo-cache/internal/orchestrator"
)

// Actions implements the repository operations the editor front-end invokes:
// reads go through the cache orchestrator, mutations go straight to GitHub and
// invalidate the affected key prefixes afterwards, and local repository work
// is delegated to the version control client.
type Actions struct {
	cache    *orchestrator.Orchestrator
	writer   interfaces.GitHubWriter
	vcs      interfaces.VersionControlClient
	decide   interfaces.DecisionProvider
	identity string // acting account login
	logger   *zap.Logger
}

// New wires the action layer.
func New(cache *orchestrator.Orchestrator, writer interfaces.GitHubWriter, vcs interfaces.VersionControlClient, decide interfaces.DecisionProvider, identity string, logger *zap.Logger) *Actions {
	return &Actions{
		cache:    cache,
		writer:   writer,
		vcs:      vcs,
		decide:   decide,
		identity: identity,
		logger:   logger,
	}
}

// CreateRepository creates a repository and invalidates the owner's cached
// listings so the next read sees it.
func (a *Actions) CreateRepository(ctx context.Context, spec interfaces.RepositorySpec) (*models.Repository, error) {
	repo, err := a.writer.CreateRepository(ctx, spec)
	if err != nil {
		return nil, err
	}

	owner := spec.Org
	if owner == "" {
		owner = a.identity
	}
	a.cache.InvalidatePrefix(keycodec.OwnerPrefix(owner))

	return repo, nil
}

// ForkRepository forks owner/repo for the acting account and invalidates both
// the source repository's entries and the acting account's listings.
func (a *Actions) ForkRepository(ctx context.Context, owner, repo string) (*models.Repository, error) {
	forked, err := a.writer.ForkRepository(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	a.cache.InvalidatePrefix(keycodec.RepoPrefix(owner, repo))
	a.cache.InvalidatePrefix(keycodec.OwnerPrefix(a.identity))

	return forked, nil
}

// CloneRepository clones owner/repo into path. An existing path needs the
// decision provider's approval before being reused.
func (a *Actions) CloneRepository(ctx context.Context, owner, repo, path string) error {
	repoData, err := a.GetRepository(ctx, owner, repo, models.FreshnessFresh)
	if err != nil {
		return err
	}
	if repoData.CloneURL == "" {
		return models.NewFailure(models.FailureUnexpected, fmt.Errorf("repository %s/%s has no clone URL", owner, repo))
	}

	if _, statErr := os.Stat(path); statErr == nil {
		if !a.decide.Confirm(fmt.Sprintf("Directory %s already exists, clone into it anyway?", path)) {
			return fmt.Errorf("clone of %s/%s aborted", owner, repo)
		}
	}

	return a.vcs.Clone(ctx, repoData.CloneURL, path)
}

// ForkAndClone forks owner/repo, clones the fork into path, and registers the
// source repository as the "upstream" remote.
func (a *Actions) ForkAndClone(ctx context.Context, owner, repo, path string) error {
	source, err := a.GetRepository(ctx, owner, repo, models.FreshnessFresh)
	if err != nil {
		return err
	}

	forked, err := a.ForkRepository(ctx, owner, repo)
	if err != nil {
		return err
	}

	if err := a.vcs.Clone(ctx, forked.CloneURL, path); err != nil {
		return err
	}
	return a.vcs.AddRemote(path, "upstream", source.CloneURL)
}

// BrowseURL returns the web URL for owner/repo, served from cache when
// possible.
func (a *Actions) BrowseURL(ctx context.Context, owner, repo string) (string, error) {
	repoData, err := a.GetRepository(ctx, owner, repo, models.FreshnessCachedOK)
	if err != nil {
		return "", err
	}
	if repoData.HTMLURL == "" {
		return "", models.NewFailure(models.FailureUnexpected, fmt.Errorf("repository %s/%s has no web URL", owner, repo))
	}
	return repoData.HTMLURL, nil
}

// GetRepository reads repository metadata through the cache.
func (a *Actions) GetRepository(ctx context.Context, owner, repo string, level models.FreshnessLevel) (*models.Repository, error) {
	req := models.NewLogicalRequest(models.EndpointRepoGet, map[string]string{
		"owner": owner,
		"repo":  repo,
	}, a.identity)

	result, err := a.cache.Request(ctx, req, level)
	if err != nil {
		return nil, err
	}

	var repoData models.Repository
	if err := json.Unmarshal(result.Value, &repoData); err != nil {
		return nil, models.NewFailure(models.FailureUnexpected, fmt.Errorf("decoding repository payload: %w", err))
	}
	if result.Stale {
		a.logger.Warn("Serving possibly stale repository data",
			zap.String("repository", owner+"/"+repo))
	}
	return &repoData, nil
}

// ListRepositories reads an owner's repositories through the cache.
func (a *Actions) ListRepositories(ctx context.Context, owner string, level models.FreshnessLevel) ([]models.Repository, error) {
	req := models.NewLogicalRequest(models.EndpointRepoList, map[string]string{
		"user": owner,
	}, a.identity)

	result, err := a.cache.Request(ctx, req, level)
	if err != nil {
		return nil, err
	}

	var repos []models.Repository
	if err := json.Unmarshal(result.Value, &repos); err != nil {
		return nil, models.NewFailure(models.FailureUnexpected, fmt.Errorf("decoding repository list payload: %w", err))
	}
	return repos, nil
}

// ListIssues reads the repository's issues through the cache.
func (a *Actions) ListIssues(ctx context.Context, owner, repo string, level models.FreshnessLevel) ([]models.Issue, error) {
	req := models.NewLogicalRequest(models.EndpointIssuesList, map[string]string{
		"owner": owner,
		"repo":  repo,
	}, a.identity)

	result, err := a.cache.Request(ctx, req, level)
	if err != nil {
		return nil, err
	}

	var issues []models.Issue
	if err := json.Unmarshal(result.Value, &issues); err != nil {
		return nil, models.NewFailure(models.FailureUnexpected, fmt.Errorf("decoding issues payload: %w", err))
	}
	return issues, nil
}

// ListPullRequests reads the repository's pull requests through the cache.
func (a *Actions) ListPullRequests(ctx context.Context, owner, repo string, level models.FreshnessLevel) ([]models.PullRequest, error) {
	req := models.NewLogicalRequest(models.EndpointPullsList, map[string]string{
		"owner": owner,
		"repo":  repo,
	}, a.identity)

	result, err := a.cache.Request(ctx, req, level)
	if err != nil {
		return nil, err
	}

	var pulls []models.PullRequest
	if err := json.Unmarshal(result.Value, &pulls); err != nil {
		return nil, models.NewFailure(models.FailureUnexpected, fmt.Errorf("decoding pull requests payload: %w", err))
	}
	return pulls, nil
}
