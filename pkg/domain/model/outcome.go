package model

// ProcessOutcome tells the gateway what happened to an accepted event.
// Unsupported events are acknowledged with OutcomeIgnored rather than
// silently dropped so the distinction stays observable.
type ProcessOutcome string

const (
	OutcomeProcessed ProcessOutcome = "processed"
	OutcomeIgnored   ProcessOutcome = "ignored"
)
