package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// GitHub holds forge API configuration. Token and WebhookSecret are
// required: the process refuses to start without them.
type GitHub struct {
	Token         string
	WebhookSecret string
	APIBaseURL    string
	APITimeout    time.Duration
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("VERTAG_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "Shared secret for webhook signature verification",
			Required:    true,
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("VERTAG_GITHUB_WEBHOOK_SECRET"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Destination: &c.APIBaseURL,
			Sources:     cli.EnvVars("VERTAG_GITHUB_API_URL"),
		},
		&cli.DurationFlag{
			Name:        "api-timeout",
			Usage:       "Timeout per GitHub API call",
			Value:       10 * time.Second,
			Destination: &c.APITimeout,
			Sources:     cli.EnvVars("VERTAG_API_TIMEOUT"),
		},
	}
}
