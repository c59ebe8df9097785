package config

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/vertag/vertag/pkg/domain/model"
	"github.com/vertag/vertag/pkg/utils/retry"
)

// Check holds the validation configuration: the ordered manifest
// candidate list, the status context key and the retry budget.
type Check struct {
	Manifests  []string
	ContextKey string
	RetryLimit int64
	RetryBase  time.Duration
	RetryMax   time.Duration
}

// Flags returns CLI flags for check configuration
func (c *Check) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "manifest",
			Usage:       "Manifest candidate as path:format[:keypath], in priority order",
			Value:       []string{"pyproject.toml:toml:project.version"},
			Destination: &c.Manifests,
			Sources:     cli.EnvVars("VERTAG_MANIFESTS"),
		},
		&cli.StringFlag{
			Name:        "check-context",
			Usage:       "Commit status context key",
			Value:       "vertag/version-check",
			Destination: &c.ContextKey,
			Sources:     cli.EnvVars("VERTAG_CHECK_CONTEXT"),
		},
		&cli.Int64Flag{
			Name:        "retry-limit",
			Usage:       "Retries per GitHub API call after the first attempt",
			Value:       3,
			Destination: &c.RetryLimit,
			Sources:     cli.EnvVars("VERTAG_RETRY_LIMIT"),
		},
		&cli.DurationFlag{
			Name:        "retry-base",
			Usage:       "Base delay for exponential backoff",
			Value:       500 * time.Millisecond,
			Destination: &c.RetryBase,
			Sources:     cli.EnvVars("VERTAG_RETRY_BASE"),
		},
		&cli.DurationFlag{
			Name:        "retry-max",
			Usage:       "Upper bound on backoff delay",
			Value:       10 * time.Second,
			Destination: &c.RetryMax,
			Sources:     cli.EnvVars("VERTAG_RETRY_MAX"),
		},
	}
}

// Candidates parses the configured manifest specs into candidate values
func (c *Check) Candidates() ([]model.ManifestCandidate, error) {
	if len(c.Manifests) == 0 {
		return nil, goerr.New("at least one manifest candidate is required")
	}

	candidates := make([]model.ManifestCandidate, 0, len(c.Manifests))
	for _, spec := range c.Manifests {
		candidate, err := ParseManifestSpec(spec)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// Policy builds the retry policy injected into the forge client
func (c *Check) Policy() retry.Policy {
	return retry.Policy{
		Limit:     int(c.RetryLimit),
		BaseDelay: c.RetryBase,
		MaxDelay:  c.RetryMax,
	}
}

// ParseManifestSpec parses a path:format[:keypath] flag value
func ParseManifestSpec(spec string) (model.ManifestCandidate, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 {
		return model.ManifestCandidate{}, goerr.New("manifest spec must be path:format[:keypath]",
			goerr.V("spec", spec))
	}

	candidate := model.ManifestCandidate{
		Path:   strings.TrimSpace(parts[0]),
		Format: model.ManifestFormat(strings.ToLower(strings.TrimSpace(parts[1]))),
	}
	if len(parts) == 3 {
		candidate.KeyPath = strings.TrimSpace(parts[2])
	}

	if err := candidate.Validate(); err != nil {
		return model.ManifestCandidate{}, goerr.Wrap(err, "invalid manifest spec", goerr.V("spec", spec))
	}
	return candidate, nil
}
