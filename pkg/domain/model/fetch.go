package model

// FetchOutcome classifies the result of a single file fetch
type FetchOutcome string

const (
	FetchFound     FetchOutcome = "found"
	FetchNotFound  FetchOutcome = "not_found"
	FetchTransient FetchOutcome = "transient_error"
	FetchFatal     FetchOutcome = "fatal_error"
)

// FetchResult is the outcome of fetching one manifest candidate from the
// forge content API. Never mutated after creation.
type FetchResult struct {
	Outcome FetchOutcome
	Content []byte // File content, set only when Outcome is FetchFound
	SHA     string // Blob SHA of the fetched content
	Err     error  // Underlying failure for transient/fatal outcomes
}

// Found constructs a successful fetch result
func Found(content []byte, sha string) *FetchResult {
	return &FetchResult{Outcome: FetchFound, Content: content, SHA: sha}
}

// NotFound constructs an absent-file fetch result
func NotFound() *FetchResult {
	return &FetchResult{Outcome: FetchNotFound}
}

// TransientFailure constructs a fetch result for a retryable failure whose
// retry budget has been exhausted
func TransientFailure(err error) *FetchResult {
	return &FetchResult{Outcome: FetchTransient, Err: err}
}

// FatalFailure constructs a fetch result for a non-retryable failure
func FatalFailure(err error) *FetchResult {
	return &FetchResult{Outcome: FetchFatal, Err: err}
}
