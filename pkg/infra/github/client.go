package github

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"github.com/vertag/vertag/pkg/domain/interfaces"
	"github.com/vertag/vertag/pkg/domain/model"
	"github.com/vertag/vertag/pkg/domain/types"
	"github.com/vertag/vertag/pkg/utils/retry"
)

type client struct {
	githubClient *github.Client
	policy       retry.Policy
	timeout      time.Duration
}

// Option is a functional option for client configuration
type Option func(*client)

// WithRetryPolicy sets the retry policy applied to every API call
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *client) {
		c.policy = p
	}
}

// WithTimeout bounds each individual API call
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.timeout = d
	}
}

// WithBaseURL points the client at a GitHub Enterprise instance or a test
// server. The URL must end with a slash.
func WithBaseURL(rawURL string) Option {
	return func(c *client) {
		u, err := url.Parse(rawURL)
		if err != nil {
			return
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		c.githubClient.BaseURL = u
	}
}

// NewClient creates a ForgeClient authenticated with a personal access token
func NewClient(token string, opts ...Option) (interfaces.ForgeClient, error) {
	if token == "" {
		return nil, goerr.New("github token is required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	c := &client{
		githubClient: github.NewClient(tc),
		timeout:      10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FetchFile retrieves a single file at a ref via the content API. The
// outcome classification follows the content API contract: 404 means the
// candidate is absent, 403/429/5xx and transport failures are transient
// and retried, anything else non-2xx is fatal.
func (c *client) FetchFile(ctx context.Context, owner, repo, ref, path string) *model.FetchResult {
	var content []byte
	var sha string

	err := c.policy.Do(ctx, types.IsTransient, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		fileContent, _, resp, err := c.githubClient.Repositories.GetContents(
			callCtx, owner, repo, path,
			&github.RepositoryContentGetOptions{Ref: ref},
		)
		if err != nil {
			return classifyAPIError(resp, err)
		}
		if fileContent == nil {
			return goerr.New("path is not a file", goerr.V("path", path))
		}

		if enc := fileContent.GetEncoding(); enc != "" && enc != "base64" && enc != "none" {
			return goerr.New("unknown version file encoding", goerr.V("encoding", enc))
		}

		decoded, err := fileContent.GetContent()
		if err != nil {
			return goerr.Wrap(err, "failed to decode file content", goerr.V("path", path))
		}

		content = []byte(decoded)
		sha = fileContent.GetSHA()
		return nil
	})

	switch {
	case err == nil:
		return model.Found(content, sha)
	case types.IsNotFound(err):
		return model.NotFound()
	case types.IsTransient(err):
		// Retry budget exhausted. Surfaced as transient, never as absence.
		return model.TransientFailure(err)
	default:
		return model.FatalFailure(err)
	}
}

// DefaultBranch returns the repository's default branch name
func (c *client) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	var branch string

	err := c.policy.Do(ctx, types.IsTransient, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		repository, resp, err := c.githubClient.Repositories.Get(callCtx, owner, repo)
		if err != nil {
			return classifyAPIError(resp, err)
		}
		branch = repository.GetDefaultBranch()
		return nil
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to get default branch",
			goerr.V("owner", owner), goerr.V("repo", repo))
	}

	return branch, nil
}

// CreateCommitStatus posts a commit status, retried under the same policy
// as file fetches since the transport is shared
func (c *client) CreateCommitStatus(ctx context.Context, owner, repo string, report *model.StatusReport) error {
	return c.policy.Do(ctx, types.IsTransient, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		state := string(report.State)
		_, resp, err := c.githubClient.Repositories.CreateStatus(
			callCtx, owner, repo, report.SHA,
			&github.RepoStatus{
				State:       &state,
				Description: &report.Description,
				Context:     &report.Context,
			},
		)
		if err != nil {
			return classifyAPIError(resp, err)
		}
		return nil
	})
}

// classifyAPIError tags a failed API call for the retry policy
func classifyAPIError(resp *github.Response, err error) error {
	if resp != nil {
		switch {
		case resp.StatusCode == http.StatusNotFound:
			return goerr.Wrap(err, "file not found", goerr.T(types.TagNotFound))
		case resp.StatusCode == http.StatusForbidden,
			resp.StatusCode == http.StatusTooManyRequests,
			resp.StatusCode >= http.StatusInternalServerError:
			return goerr.Wrap(err, "github api rate limited or unavailable",
				goerr.T(types.TagTransient), goerr.V("status", resp.StatusCode))
		default:
			return goerr.Wrap(err, "github api request rejected",
				goerr.V("status", resp.StatusCode))
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return goerr.Wrap(err, "github api call timed out", goerr.T(types.TagTransient))
	}

	// No HTTP response at all: connection-level failure
	return goerr.Wrap(err, "github api request failed", goerr.T(types.TagTransient))
}
