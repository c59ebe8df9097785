package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/vertag/vertag/pkg/domain/interfaces"
	"github.com/vertag/vertag/pkg/domain/model"
)

// Reporter turns verdicts into commit statuses. The context key together
// with the commit SHA is the idempotency key on the forge side, so
// re-reporting the same verdict is harmless.
type Reporter struct {
	forge      interfaces.ForgeClient
	contextKey string
}

// NewReporter creates a Reporter posting under the given status context
func NewReporter(forge interfaces.ForgeClient, contextKey string) *Reporter {
	return &Reporter{
		forge:      forge,
		contextKey: contextKey,
	}
}

// Report posts the verdict as a commit status on the event's head commit.
// Posting shares the forge client's bounded retry policy; a failure is
// surfaced to the caller rather than retried indefinitely.
func (r *Reporter) Report(ctx context.Context, event *model.WebhookEvent, verdict *model.Verdict) error {
	owner, repo, err := event.OwnerRepo()
	if err != nil {
		return goerr.Wrap(err, "cannot report status for invalid repository")
	}

	report := &model.StatusReport{
		SHA:         event.SHA,
		State:       stateForVerdict(verdict),
		Description: verdict.Describe(),
		Context:     r.contextKey,
	}

	if err := r.forge.CreateCommitStatus(ctx, owner, repo, report); err != nil {
		return goerr.Wrap(err, "failed to post commit status",
			goerr.V("sha", report.SHA), goerr.V("state", string(report.State)))
	}

	ctxlog.From(ctx).Info("posted commit status",
		"repository", event.Repository,
		"sha", report.SHA,
		"state", string(report.State),
		"description", report.Description,
	)
	return nil
}

func stateForVerdict(v *model.Verdict) model.StatusState {
	switch v.Kind {
	case model.VerdictPass:
		return model.StatusSuccess
	case model.VerdictFail:
		return model.StatusFailure
	default:
		return model.StatusError
	}
}
