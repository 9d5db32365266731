package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"gh-repo-cache/internal/actions"
	"gh-repo-cache/internal/interfaces/mock"
	"gh-repo-cache/internal/keycodec"
	"gh-repo-cache/internal/models"
	"gh-repo-cache/internal/offline"
	"gh-repo-cache/internal/orchestrator"
	"gh-repo-cache/internal/policy"
	"gh-repo-cache/internal/store/l1"
)

type serverFixture struct {
	server  *Server
	router  http.Handler
	fetcher *mock.MockFetcher
	writer  *mock.MockGitHubWriter
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	fetcher := mock.NewMockFetcher(ctrl)
	writer := mock.NewMockGitHubWriter(ctrl)
	vcs := mock.NewMockVersionControlClient(ctrl)
	decide := mock.NewMockDecisionProvider(ctrl)

	store, err := l1.New(l1.Config{SizeMB: 8}, zap.NewNop())
	require.NoError(t, err)

	pol := policy.New(policy.Config{
		ClassTTL: map[models.TTLClass]time.Duration{
			models.TTLClassShort: time.Hour,
			models.TTLClassLong:  time.Hour,
		},
		Rules: policy.DefaultRules(),
	}, zap.NewNop())

	orch := orchestrator.New(store, keycodec.NewCodec(), pol, offline.NewGate(zap.NewNop()), fetcher, zap.NewNop())
	act := actions.New(orch, writer, vcs, decide, "alice", zap.NewNop())

	server := NewServer(orch, act, "alice", zap.NewNop())
	return &serverFixture{
		server:  server,
		router:  server.createRouter(),
		fetcher: fetcher,
		writer:  writer,
	}
}

func (f *serverFixture) do(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

const repoPayload = `{"id": 1, "name": "hello", "full_name": "octo/hello", "html_url": "https://github.com/octo/hello", "clone_url": "https://github.com/octo/hello.git"}`

func TestServer_HandleRequest(t *testing.T) {
	f := newServerFixture(t)

	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return([]byte(repoPayload), nil).Times(1)

	rec := f.do(t, "POST", "/v1/request", &RequestPayload{
		Endpoint: "repos.get",
		Params:   map[string]string{"owner": "octo", "repo": "hello"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Fetched)
	assert.False(t, resp.Stale)
	assert.JSONEq(t, repoPayload, string(resp.Data))

	// Second request is served from the cache without a fetch.
	rec = f.do(t, "POST", "/v1/request", &RequestPayload{
		Endpoint: "repos.get",
		Params:   map[string]string{"owner": "octo", "repo": "hello"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = RequestResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Fetched)
}

func TestServer_HandleRequest_UnknownEndpoint(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, "POST", "/v1/request", &RequestPayload{Endpoint: "repos.nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_HandleRequest_InvalidFreshness(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, "POST", "/v1/request", &RequestPayload{
		Endpoint:  "repos.get",
		Params:    map[string]string{"owner": "octo", "repo": "hello"},
		Freshness: "sorta-fresh",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_HandleRequest_NotFound(t *testing.T) {
	f := newServerFixture(t)

	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return(nil, models.NotFoundFailure("repository")).Times(1)

	rec := f.do(t, "POST", "/v1/request", &RequestPayload{
		Endpoint: "repos.get",
		Params:   map[string]string{"owner": "octo", "repo": "nope"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_HandleInvalidate(t *testing.T) {
	f := newServerFixture(t)

	// Warm the cache, invalidate the repo prefix, then expect a refetch.
	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return([]byte(repoPayload), nil).Times(2)

	req := &RequestPayload{
		Endpoint: "repos.get",
		Params:   map[string]string{"owner": "octo", "repo": "hello"},
	}
	require.Equal(t, http.StatusOK, f.do(t, "POST", "/v1/request", req).Code)

	rec := f.do(t, "POST", "/v1/invalidate", &InvalidatePayload{Prefix: "repo:octo/hello:"})
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, http.StatusOK, f.do(t, "POST", "/v1/request", req).Code)
}

func TestServer_HandleInvalidate_MissingFields(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, "POST", "/v1/invalidate", &InvalidatePayload{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_OfflineToggle(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, "GET", "/v1/offline", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var state OfflinePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.False(t, state.Offline)

	rec = f.do(t, "POST", "/v1/offline", &OfflinePayload{Offline: true})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.True(t, state.Offline)

	// Offline with an empty cache maps to 503.
	rec = f.do(t, "POST", "/v1/request", &RequestPayload{
		Endpoint: "repos.get",
		Params:   map[string]string{"owner": "octo", "repo": "hello"},
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_HandleCreateRepo(t *testing.T) {
	f := newServerFixture(t)

	f.writer.EXPECT().CreateRepository(gomock.Any(), gomock.Any()).
		Return(&models.Repository{FullName: "alice/newrepo"}, nil)

	rec := f.do(t, "POST", "/v1/actions/create", &CreateRepoPayload{Name: "newrepo"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RepositoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice/newrepo", resp.Repository.FullName)
}

func TestServer_HandleCreateRepo_MissingName(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, "POST", "/v1/actions/create", &CreateRepoPayload{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_HandleGetRepo(t *testing.T) {
	f := newServerFixture(t)

	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return([]byte(repoPayload), nil).Times(1)

	rec := f.do(t, "GET", "/v1/repos/octo/hello", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RepositoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Repository)
	assert.Equal(t, "octo/hello", resp.Repository.FullName)
}

func TestServer_HandleBrowse(t *testing.T) {
	f := newServerFixture(t)

	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return([]byte(repoPayload), nil).Times(1)

	rec := f.do(t, "GET", "/v1/repos/octo/hello/browse", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://github.com/octo/hello", resp.URL)
}

func TestServer_HandleListIssues(t *testing.T) {
	f := newServerFixture(t)

	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return([]byte(`[{"number": 7, "title": "bug", "state": "open"}]`), nil).Times(1)

	rec := f.do(t, "GET", "/v1/repos/octo/hello/issues", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool           `json:"success"`
		Issues  []models.Issue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Issues, 1)
	assert.Equal(t, 7, resp.Issues[0].Number)
}

func TestServer_Health(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}
