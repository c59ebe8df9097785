package model

// StatusState is a commit status state accepted by the forge status API
type StatusState string

const (
	StatusSuccess StatusState = "success"
	StatusFailure StatusState = "failure"
	StatusError   StatusState = "error"
	StatusPending StatusState = "pending"
)

// StatusReport is the outbound commit status payload for one verdict.
// (SHA, Context) is the idempotency key: re-posting the same key with an
// identical payload is a no-op from the forge's perspective.
type StatusReport struct {
	SHA         string
	State       StatusState
	Description string
	Context     string
}
