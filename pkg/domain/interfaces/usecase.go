package interfaces

import (
	"context"

	"github.com/vertag/vertag/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent runs the validate-and-report chain for a normalized
	// event. Events that are not tag pushes return OutcomeIgnored.
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) (model.ProcessOutcome, error)
}
