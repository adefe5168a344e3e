// Package githost is a thin typed gateway to the GitHub REST API.
//
// Every call carries the credential as a bearer token and GitHub's versioned accept header
// (set by go-github). Non-2xx answers come back as *HostAPIError with the upstream status and
// body; nothing is retried or interpreted.
package githost

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/google/go-github/v72/github"

	"github.com/testgen-ai/testgen/common/config"
)

// repoListPageSize matches the single page the repository picker shows.
const repoListPageSize = 100

// Client issues authenticated calls for one credential.
type Client struct {
	gh *github.Client
}

// Factory builds per-credential clients sharing one transport.
type Factory struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewFactoryFromConfig builds a Factory from GITHUB_API_BASE and GITHUB_TIMEOUT.
func NewFactoryFromConfig() *Factory {
	return &Factory{
		HTTPClient: &http.Client{Timeout: config.GitHubTimeout},
		BaseURL:    config.GitHubAPIBase,
	}
}

// New returns a client authorized by token.
func (f *Factory) New(token string) (*Client, error) {
	return NewClient(f.HTTPClient, f.BaseURL, token)
}

// NewClient returns a client for the API rooted at baseURL. An empty baseURL targets api.github.com.
func NewClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("empty github credential")
	}

	gh := github.NewClient(httpClient).WithAuthToken(token)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, errors.Wrapf(err, "parse github api base %q", baseURL)
		}
		gh.BaseURL = u
	}

	return &Client{gh: gh}, nil
}

// User returns the authenticated profile (GET /user). It doubles as a credential check.
func (c *Client) User(ctx context.Context) (*github.User, error) {
	user, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return nil, wrapError(resp, err, "get authenticated user")
	}
	return user, nil
}

// ListRepos lists the caller's repositories, most recently updated first
// (GET /user/repos?sort=updated&per_page=100).
func (c *Client) ListRepos(ctx context.Context) ([]*github.Repository, error) {
	repos, resp, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, &github.RepositoryListByAuthenticatedUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: repoListPageSize},
	})
	if err != nil {
		return nil, wrapError(resp, err, "list repositories")
	}
	return repos, nil
}

// Tree returns the recursive tree of the default branch head
// (GET /repos/{owner}/{repo}/git/trees/HEAD?recursive=1).
func (c *Client) Tree(ctx context.Context, repo RepoRef) (*github.Tree, error) {
	tree, resp, err := c.gh.Git.GetTree(ctx, repo.Owner, repo.Name, "HEAD", true)
	if err != nil {
		return nil, wrapError(resp, err, "get tree of "+repo.String())
	}
	return tree, nil
}

// Languages returns the language byte histogram (GET /repos/{owner}/{repo}/languages).
func (c *Client) Languages(ctx context.Context, repo RepoRef) (map[string]int, error) {
	langs, resp, err := c.gh.Repositories.ListLanguages(ctx, repo.Owner, repo.Name)
	if err != nil {
		return nil, wrapError(resp, err, "list languages of "+repo.String())
	}
	return langs, nil
}

// Repository returns repository metadata (GET /repos/{owner}/{repo}).
func (c *Client) Repository(ctx context.Context, repo RepoRef) (*github.Repository, error) {
	r, resp, err := c.gh.Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		return nil, wrapError(resp, err, "get repository "+repo.String())
	}
	return r, nil
}

// FileContent fetches one file (GET /repos/{owner}/{repo}/contents/{path}) and returns its
// base64-decoded text.
func (c *Client) FileContent(ctx context.Context, repo RepoRef, path string) (string, error) {
	file, _, resp, err := c.gh.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, nil)
	if err != nil {
		return "", wrapError(resp, err, "get contents of "+path)
	}
	if file == nil {
		return "", errors.Errorf("%s is a directory", path)
	}

	content, err := file.GetContent()
	if err != nil {
		return "", errors.Wrapf(err, "decode contents of %s", path)
	}
	return content, nil
}
