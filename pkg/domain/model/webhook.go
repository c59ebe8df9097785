package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// EventKind represents the normalized kind of a webhook event
type EventKind string

const (
	EventKindTagPush     EventKind = "tag_push"
	EventKindBranchPush  EventKind = "branch_push"
	EventKindPullRequest EventKind = "pull_request"
	EventKindUnknown     EventKind = "unknown"
)

const (
	tagRefPrefix    = "refs/tags/"
	branchRefPrefix = "refs/heads/"
)

// repoNamePattern matches valid GitHub owner and repository names
var repoNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\-._]+$`)

// WebhookEvent is a forge webhook payload normalized into the shape the
// validator consumes. Immutable once constructed.
type WebhookEvent struct {
	ID         string    // X-GitHub-Delivery header, or a generated fallback
	Kind       EventKind // Normalized event kind
	Repository string    // Full name, e.g. "owner/repo"
	SHA        string    // Head commit SHA
	Ref        string    // Full git ref, e.g. "refs/tags/v1.2.3"
	ReceivedAt time.Time
}

// Validate checks that the event is internally consistent for its kind.
// Tag and branch pushes must carry a non-empty ref and commit SHA.
func (e *WebhookEvent) Validate() error {
	if e.Repository == "" {
		return goerr.New("webhook event has no repository")
	}
	if _, _, err := e.OwnerRepo(); err != nil {
		return err
	}

	switch e.Kind {
	case EventKindTagPush, EventKindBranchPush:
		if e.Ref == "" || e.SHA == "" {
			return goerr.New("push event requires ref and commit SHA",
				goerr.V("ref", e.Ref), goerr.V("sha", e.SHA))
		}
	}
	return nil
}

// OwnerRepo splits the repository full name and validates both parts
func (e *WebhookEvent) OwnerRepo() (string, string, error) {
	owner, repo, ok := strings.Cut(e.Repository, "/")
	if !ok {
		return "", "", goerr.New("repository is not in owner/repo form",
			goerr.V("repository", e.Repository))
	}
	if !repoNamePattern.MatchString(owner) {
		return "", "", goerr.New("invalid repository owner", goerr.V("owner", owner))
	}
	if !repoNamePattern.MatchString(repo) {
		return "", "", goerr.New("invalid repository name", goerr.V("repo", repo))
	}
	return owner, repo, nil
}

// IsTagPush reports whether the event is a tag push
func (e *WebhookEvent) IsTagPush() bool {
	return e.Kind == EventKindTagPush
}

// TagName returns the tag name with the refs/tags/ prefix removed
func (e *WebhookEvent) TagName() string {
	return strings.TrimPrefix(e.Ref, tagRefPrefix)
}

// KindForRef maps a push event ref to the event kind
func KindForRef(ref string) EventKind {
	switch {
	case strings.HasPrefix(ref, tagRefPrefix):
		return EventKindTagPush
	case strings.HasPrefix(ref, branchRefPrefix):
		return EventKindBranchPush
	default:
		return EventKindUnknown
	}
}
