package model

import "fmt"

// VerdictKind is the terminal outcome of one validation run
type VerdictKind string

const (
	VerdictPass         VerdictKind = "pass"
	VerdictFail         VerdictKind = "fail"
	VerdictInconclusive VerdictKind = "inconclusive"
)

// Verdict is the result of comparing a manifest's declared version against
// the pushed tag. Owned by the validation run that produced it and passed
// by value to the reporter.
type Verdict struct {
	Kind     VerdictKind
	Matched  string // Pass: the version that matched
	Expected string // Fail: normalized tag
	Found    string // Fail: normalized manifest version
	Reason   string // Inconclusive: why no pass/fail decision was possible
}

// Pass constructs a passing verdict
func Pass(matched string) *Verdict {
	return &Verdict{Kind: VerdictPass, Matched: matched}
}

// Fail constructs a failing verdict with both compared values
func Fail(expected, found string) *Verdict {
	return &Verdict{Kind: VerdictFail, Expected: expected, Found: found}
}

// Inconclusive constructs a verdict for runs that could not determine a version
func Inconclusive(reason string) *Verdict {
	return &Verdict{Kind: VerdictInconclusive, Reason: reason}
}

// Describe renders the human-readable description shown in the forge UI
func (v *Verdict) Describe() string {
	switch v.Kind {
	case VerdictPass:
		return fmt.Sprintf("declared version %s matches tag", v.Matched)
	case VerdictFail:
		return fmt.Sprintf("version mismatch: tag is %s but manifest declares %s", v.Expected, v.Found)
	default:
		return fmt.Sprintf("could not determine version: %s", v.Reason)
	}
}
