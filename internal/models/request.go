package models

// Endpoint identifies a logical GitHub API operation independent of transport.
type Endpoint string

const (
	EndpointRepoGet    Endpoint = "repos.get"
	EndpointRepoList   Endpoint = "repos.list"
	EndpointIssuesList Endpoint = "issues.list"
	EndpointPullsList  Endpoint = "pulls.list"
	EndpointOrgsList   Endpoint = "orgs.list"
	EndpointUserGet    Endpoint = "user.get"
)

// KnownEndpoints lists every endpoint the fetcher can resolve.
var KnownEndpoints = []Endpoint{
	EndpointRepoGet,
	EndpointRepoList,
	EndpointIssuesList,
	EndpointPullsList,
	EndpointOrgsList,
	EndpointUserGet,
}

// IsKnown reports whether the endpoint is one the fetcher can resolve.
func (e Endpoint) IsKnown() bool {
	for _, known := range KnownEndpoints {
		if e == known {
			return true
		}
	}
	return false
}

// LogicalRequest describes a desired piece of remote data: an endpoint, its
// parameters, and the acting account. Construct it with NewLogicalRequest and
// treat it as immutable afterwards.
type LogicalRequest struct {
	Endpoint Endpoint
	Params   map[string]string
	Identity string // acting account, optional
}

// NewLogicalRequest builds a LogicalRequest with its own copy of params, so
// later mutation of the caller's map cannot change the request.
func NewLogicalRequest(endpoint Endpoint, params map[string]string, identity string) LogicalRequest {
	copied := make(map[string]string, len(params))
	for k, v := range params {
		copied[k] = v
	}
	return LogicalRequest{
		Endpoint: endpoint,
		Params:   copied,
		Identity: identity,
	}
}

// Param returns the named parameter value, or "" when absent.
func (r LogicalRequest) Param(name string) string {
	return r.Params[name]
}
