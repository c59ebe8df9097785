package interfaces

import (
	"context"

	"github.com/vertag/vertag/pkg/domain/model"
)

// ForgeClient defines the operations the service needs from the forge API.
// Implementations are safe for concurrent use; the HTTP client underneath
// is a shared, stateless, connection-pooled handle.
type ForgeClient interface {
	// FetchFile retrieves a file at a ref via the content API. Absence
	// (HTTP 404) is reported as a FetchNotFound result, not an error.
	FetchFile(ctx context.Context, owner, repo, ref, path string) *model.FetchResult

	// DefaultBranch returns the repository's default branch name
	DefaultBranch(ctx context.Context, owner, repo string) (string, error)

	// CreateCommitStatus posts a commit status for report.SHA
	CreateCommitStatus(ctx context.Context, owner, repo string, report *model.StatusReport) error
}
