package model

import "strings"

// ExtractedVersion is a version string pulled out of a manifest
type ExtractedVersion struct {
	Raw        string // Exactly as it appears in the manifest
	Normalized string // Raw with a single leading "v" stripped
}

// NewExtractedVersion normalizes a raw version string
func NewExtractedVersion(raw string) *ExtractedVersion {
	return &ExtractedVersion{
		Raw:        raw,
		Normalized: NormalizeVersion(raw),
	}
}

// NormalizeVersion strips exactly one leading "v" so that "v1.2.3" and
// "1.2.3" compare equal. Any other prefix is left intact; comparison
// stays strict byte-for-byte equality.
func NormalizeVersion(s string) string {
	return strings.TrimPrefix(s, "v")
}
