package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify forge API failures for the retry policy.
var (
	// TagTransient marks failures worth retrying: rate limits, 5xx, network errors, timeouts
	TagTransient = goerr.NewTag("transient")

	// TagNotFound marks a 404 from the content API. Absence is a legitimate
	// signal to try the next manifest candidate, not an error.
	TagNotFound = goerr.NewTag("not_found")
)

// Extraction errors. Validators distinguish these from fetch failures:
// an extraction failure is terminal for one candidate only.
var (
	ErrMalformedFile = goerr.New("manifest content does not parse")
	ErrMissingField  = goerr.New("version field not found in manifest")
	ErrTypeMismatch  = goerr.New("version field is not a string")
	ErrEmptyFile     = goerr.New("manifest content is empty")
)

// IsTransient reports whether err is a retryable forge API failure
func IsTransient(err error) bool {
	return goerr.HasTag(err, TagTransient)
}

// IsNotFound reports whether err represents a missing file
func IsNotFound(err error) bool {
	return goerr.HasTag(err, TagNotFound)
}
