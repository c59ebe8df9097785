package usecase

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/vertag/vertag/pkg/domain/model"
)

type webhookUseCase struct {
	validator *Validator
	reporter  *Reporter
}

// NewWebhook creates a new instance of WebhookUseCase
func NewWebhook(validator *Validator, reporter *Reporter) *webhookUseCase {
	return &webhookUseCase{
		validator: validator,
		reporter:  reporter,
	}
}

// ProcessEvent runs the validate-and-report chain for one event. The
// whole chain lives inside the request context: if the inbound webhook
// deadline expires, the chain is abandoned and the forge's redelivery
// is the recovery path.
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) (model.ProcessOutcome, error) {
	logger := ctxlog.From(ctx)

	logger.Info("processing webhook event",
		"id", event.ID,
		"kind", string(event.Kind),
		"repository", event.Repository,
		"ref", event.Ref,
	)

	if !event.IsTagPush() {
		logger.Info("ignoring non-tag-push event", "kind", string(event.Kind))
		return model.OutcomeIgnored, nil
	}

	verdict := uc.validator.Validate(ctx, event)

	if err := uc.reporter.Report(ctx, event, verdict); err != nil {
		sentry.CaptureException(err)
		return model.OutcomeProcessed, goerr.Wrap(err, "failed to report verdict",
			goerr.V("event_id", event.ID))
	}

	return model.OutcomeProcessed, nil
}
