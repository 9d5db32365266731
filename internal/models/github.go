package models

// Repository is the slice of GitHub repository metadata the action layer
// consumes. Field tags match the GitHub REST encoding so cached fetcher
// payloads decode directly.
type Repository struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Owner         *Actor `json:"owner,omitempty"`
	Description   string `json:"description"`
	Private       bool   `json:"private"`
	Fork          bool   `json:"fork"`
	HTMLURL       string `json:"html_url"`
	CloneURL      string `json:"clone_url"`
	SSHURL        string `json:"ssh_url"`
	DefaultBranch string `json:"default_branch"`
}

// Actor is a user or organization reference.
type Actor struct {
	Login string `json:"login"`
}

// Issue is a GitHub issue summary.
type Issue struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	State   string `json:"state"`
	HTMLURL string `json:"html_url"`
	User    *Actor `json:"user,omitempty"`
}

// PullRequest is a GitHub pull request summary.
type PullRequest struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	State   string `json:"state"`
	HTMLURL string `json:"html_url"`
	User    *Actor `json:"user,omitempty"`
	Draft   bool   `json:"draft"`
}

// Organization is a GitHub organization summary.
type Organization struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
}
