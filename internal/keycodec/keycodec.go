package keycodec

import (
	"net/url"
	"sort"
	"strings"

	"gh-repo-cache/internal/interfaces"
	"gh-repo-cache/internal/models"
)

// Ensure Codec implements interfaces.KeyCodec
var _ interfaces.KeyCodec = (*Codec)(nil)

// Codec derives cache keys of the form
//
//	<scope>:<identity>:<endpoint>:<canonical-params>
//
// where scope is "repo:<owner>/<repo>", "owner:<owner>", or "global" depending
// on the request parameters. Scope-first layout lets a single prefix
// invalidation cover every entry related to one repository or owner.
type Codec struct{}

// NewCodec creates a new Codec instance
func NewCodec() interfaces.KeyCodec {
	return &Codec{}
}

// Encode builds the cache key for a logical request. Parameters are sorted by
// name before joining, so construction order never changes the key. Every
// segment is query-escaped, which keeps the ':' separators unambiguous.
func (c *Codec) Encode(req models.LogicalRequest) string {
	identity := req.Identity
	if identity == "" {
		identity = "anon"
	}

	var b strings.Builder
	b.WriteString(c.ScopePrefix(req))
	b.WriteString(url.QueryEscape(identity))
	b.WriteByte(':')
	b.WriteString(url.QueryEscape(string(req.Endpoint)))
	b.WriteByte(':')
	b.WriteString(canonicalParams(req.Params))

	return b.String()
}

// ScopePrefix returns the invalidation prefix for the request's repository or
// owner. Requests with neither parameter share the "global" scope. The prefix
// ends with the segment separator so "repo:octo/hello:" can never match keys
// of a repository whose name merely starts with "hello".
func (c *Codec) ScopePrefix(req models.LogicalRequest) string {
	owner := req.Param("owner")
	if owner == "" {
		owner = req.Param("user")
	}
	if owner == "" {
		owner = req.Param("org")
	}

	repo := req.Param("repo")

	switch {
	case owner != "" && repo != "":
		return RepoPrefix(owner, repo)
	case owner != "":
		return OwnerPrefix(owner)
	default:
		return "global:"
	}
}

// RepoPrefix builds the invalidation prefix covering every cached entry for
// one repository, without needing a full request.
func RepoPrefix(owner, repo string) string {
	return "repo:" + url.QueryEscape(owner) + "/" + url.QueryEscape(repo) + ":"
}

// OwnerPrefix builds the invalidation prefix covering every cached entry
// scoped to one owner.
func OwnerPrefix(owner string) string {
	return "owner:" + url.QueryEscape(owner) + ":"
}

// canonicalParams renders params as sorted, escaped k=v pairs joined by '&'.
func canonicalParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, url.QueryEscape(name)+"="+url.QueryEscape(params[name]))
	}
	return strings.Join(pairs, "&")
}
