package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/go-github/v67/github"
	"go.uber.org/zap"

	"gh-repo-cache/internal/interfaces"
	"gh-repo-cache/internal/models"
)

// Ensure GitHubClient implements both boundary contracts
var _ interfaces.Fetcher = (*GitHubClient)(nil)
var _ interfaces.GitHubWriter = (*GitHubClient)(nil)

// GitHubClient resolves logical requests against the GitHub REST API and
// performs the mutating operations the action layer needs. Every error leaving
// it is classified as not-found, transient, or unexpected.
type GitHubClient struct {
	client *github.Client
	logger *zap.Logger
}

// New creates a GitHubClient. An empty token gives unauthenticated access with
// its lower rate limits.
func New(token string, logger *zap.Logger) *GitHubClient {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHubClient{
		client: client,
		logger: logger,
	}
}

// Fetch performs the network call for a logical request and returns the
// decoded response re-encoded as JSON.
func (g *GitHubClient) Fetch(ctx context.Context, req models.LogicalRequest) ([]byte, error) {
	payload, err := g.resolve(ctx, req)
	if err != nil {
		return nil, classify(err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, models.NewFailure(models.FailureUnexpected, fmt.Errorf("encoding %s response: %w", req.Endpoint, err))
	}
	return data, nil
}

// CreateRepository creates a repository for the authenticated user, or under
// spec.Org when set.
func (g *GitHubClient) CreateRepository(ctx context.Context, spec interfaces.RepositorySpec) (*models.Repository, error) {
	repo := &github.Repository{
		Name:        github.String(spec.Name),
		Description: github.String(spec.Description),
		Private:     github.Bool(spec.Private),
	}

	created, _, err := g.client.Repositories.Create(ctx, spec.Org, repo)
	if err != nil {
		return nil, classify(err)
	}

	g.logger.Info("Created repository", zap.String("full_name", created.GetFullName()))
	return convertRepository(created), nil
}

// ForkRepository forks owner/repo for the authenticated user. GitHub forks
// asynchronously and answers 202; the returned metadata is already usable.
func (g *GitHubClient) ForkRepository(ctx context.Context, owner, repo string) (*models.Repository, error) {
	forked, _, err := g.client.Repositories.CreateFork(ctx, owner, repo, nil)
	if err != nil {
		if _, accepted := err.(*github.AcceptedError); !accepted {
			return nil, classify(err)
		}
	}

	g.logger.Info("Forked repository", zap.String("source", owner+"/"+repo))
	return convertRepository(forked), nil
}

// resolve maps a logical request to the SDK call for its endpoint.
func (g *GitHubClient) resolve(ctx context.Context, req models.LogicalRequest) (interface{}, error) {
	switch req.Endpoint {
	case models.EndpointRepoGet:
		repo, _, err := g.client.Repositories.Get(ctx, req.Param("owner"), req.Param("repo"))
		return repo, err

	case models.EndpointRepoList:
		opts := &github.RepositoryListByUserOptions{ListOptions: listOptions(req)}
		repos, _, err := g.client.Repositories.ListByUser(ctx, req.Param("user"), opts)
		return repos, err

	case models.EndpointIssuesList:
		opts := &github.IssueListByRepoOptions{
			State:       stateOrDefault(req),
			ListOptions: listOptions(req),
		}
		issues, _, err := g.client.Issues.ListByRepo(ctx, req.Param("owner"), req.Param("repo"), opts)
		return issues, err

	case models.EndpointPullsList:
		opts := &github.PullRequestListOptions{
			State:       stateOrDefault(req),
			ListOptions: listOptions(req),
		}
		pulls, _, err := g.client.PullRequests.List(ctx, req.Param("owner"), req.Param("repo"), opts)
		return pulls, err

	case models.EndpointOrgsList:
		opts := &github.ListOptions{}
		*opts = listOptions(req)
		orgs, _, err := g.client.Organizations.List(ctx, req.Param("user"), opts)
		return orgs, err

	case models.EndpointUserGet:
		user, _, err := g.client.Users.Get(ctx, req.Param("user"))
		return user, err

	default:
		return nil, models.NewFailure(models.FailureUnexpected, fmt.Errorf("unknown endpoint %q", req.Endpoint))
	}
}

func listOptions(req models.LogicalRequest) github.ListOptions {
	opts := github.ListOptions{}
	if page, err := strconv.Atoi(req.Param("page")); err == nil {
		opts.Page = page
	}
	if perPage, err := strconv.Atoi(req.Param("per_page")); err == nil {
		opts.PerPage = perPage
	}
	return opts
}

func stateOrDefault(req models.LogicalRequest) string {
	if state := req.Param("state"); state != "" {
		return state
	}
	return "open"
}

func convertRepository(repo *github.Repository) *models.Repository {
	if repo == nil {
		return nil
	}
	converted := &models.Repository{
		ID:            repo.GetID(),
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Description:   repo.GetDescription(),
		Private:       repo.GetPrivate(),
		Fork:          repo.GetFork(),
		HTMLURL:       repo.GetHTMLURL(),
		CloneURL:      repo.GetCloneURL(),
		SSHURL:        repo.GetSSHURL(),
		DefaultBranch: repo.GetDefaultBranch(),
	}
	if owner := repo.GetOwner(); owner != nil {
		converted.Owner = &models.Actor{Login: owner.GetLogin()}
	}
	return converted
}
