package model

import "github.com/m-mizutani/goerr/v2"

// ManifestFormat declares how a manifest candidate should be parsed
type ManifestFormat string

const (
	FormatTOML  ManifestFormat = "toml"
	FormatJSON  ManifestFormat = "json"
	FormatPlain ManifestFormat = "plain"
)

// ManifestCandidate is a configured (path, format, key path) tuple the
// validator attempts in priority order. The set is static configuration,
// not derived at runtime.
type ManifestCandidate struct {
	Path    string         // Repository-relative file path
	Format  ManifestFormat // Parser dialect
	KeyPath string         // Dotted key path for structured formats, e.g. "project.version"
}

// Validate checks the candidate is usable before any fetch happens
func (c ManifestCandidate) Validate() error {
	if c.Path == "" {
		return goerr.New("manifest candidate has no path")
	}
	switch c.Format {
	case FormatTOML, FormatJSON:
		if c.KeyPath == "" {
			return goerr.New("structured manifest candidate requires a key path",
				goerr.V("path", c.Path), goerr.V("format", string(c.Format)))
		}
	case FormatPlain:
		// Plain text ignores the key path
	default:
		return goerr.New("unknown manifest format",
			goerr.V("path", c.Path), goerr.V("format", string(c.Format)))
	}
	return nil
}
