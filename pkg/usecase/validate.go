package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"

	"github.com/vertag/vertag/pkg/domain/interfaces"
	"github.com/vertag/vertag/pkg/domain/model"
)

// validationState makes the fetch/extract/compare progression explicit so
// the last-candidate and no-candidate edge cases stay unambiguous.
type validationState int

const (
	stateAwaitingFetch validationState = iota
	stateExtracting
	stateComparing
	stateDone
)

// Validator walks the configured manifest candidates in priority order and
// decides a verdict for one tag push. It holds no mutable state across
// events and is safe to run concurrently.
type Validator struct {
	forge      interfaces.ForgeClient
	candidates []model.ManifestCandidate
}

// NewValidator creates a Validator over a static, ordered candidate list
func NewValidator(forge interfaces.ForgeClient, candidates []model.ManifestCandidate) *Validator {
	return &Validator{
		forge:      forge,
		candidates: candidates,
	}
}

// Validate runs the state machine for one event and returns its verdict.
// Only Fetcher calls touch the network; everything else is pure.
func (v *Validator) Validate(ctx context.Context, event *model.WebhookEvent) *model.Verdict {
	logger := ctxlog.From(ctx)

	owner, repo, err := event.OwnerRepo()
	if err != nil {
		return model.Inconclusive(fmt.Sprintf("invalid repository name: %v", err))
	}

	state := stateAwaitingFetch
	var verdict *model.Verdict

	for i, candidate := range v.candidates {
		lastCandidate := i == len(v.candidates)-1

		// AwaitingFetch
		result := v.forge.FetchFile(ctx, owner, repo, event.SHA, candidate.Path)
		switch result.Outcome {
		case model.FetchNotFound:
			logger.Debug("manifest candidate absent, trying next",
				"path", candidate.Path)
			continue
		case model.FetchTransient:
			verdict = model.Inconclusive(fmt.Sprintf(
				"could not fetch %s: %v", candidate.Path, result.Err))
			state = stateDone
		case model.FetchFatal:
			verdict = model.Inconclusive(fmt.Sprintf(
				"fetching %s failed: %v", candidate.Path, result.Err))
			state = stateDone
		case model.FetchFound:
			state = stateExtracting
		}
		if state == stateDone {
			break
		}

		// Extracting
		extracted, err := ExtractVersion(result.Content, candidate.Format, candidate.KeyPath)
		if err != nil {
			if lastCandidate {
				verdict = model.Inconclusive(fmt.Sprintf(
					"extracting version from %s failed: %v", candidate.Path, err))
				state = stateDone
				break
			}
			// A candidate that fetched but does not yield a version is
			// treated the same as an absent one
			logger.Debug("extraction failed, trying next candidate",
				"path", candidate.Path, "error", err)
			state = stateAwaitingFetch
			continue
		}
		state = stateComparing

		// Comparing: strict equality after the v-prefix strip on both sides
		expected := model.NormalizeVersion(event.TagName())
		if extracted.Normalized == expected {
			verdict = model.Pass(extracted.Normalized)
		} else {
			verdict = model.Fail(expected, extracted.Normalized)
		}
		state = stateDone
		break
	}

	if state != stateDone {
		verdict = model.Inconclusive("no manifest found at any candidate path")
	}

	logger.Info("validation finished",
		"repository", event.Repository,
		"tag", event.TagName(),
		"verdict", string(verdict.Kind),
	)
	return verdict
}
