package usecase

import (
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/vertag/vertag/pkg/domain/model"
	"github.com/vertag/vertag/pkg/domain/types"
)

// ExtractVersion pulls the declared version out of manifest content.
// It is a pure function of its input: no network, no disk, identical
// input always yields identical output.
func ExtractVersion(content []byte, format model.ManifestFormat, keyPath string) (*model.ExtractedVersion, error) {
	switch format {
	case model.FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(content, &doc); err != nil {
			return nil, goerr.Wrap(types.ErrMalformedFile, err.Error())
		}
		return versionAtKeyPath(doc, keyPath)

	case model.FormatJSON:
		var doc map[string]any
		if err := json.Unmarshal(content, &doc); err != nil {
			return nil, goerr.Wrap(types.ErrMalformedFile, err.Error())
		}
		return versionAtKeyPath(doc, keyPath)

	case model.FormatPlain:
		trimmed := strings.TrimSpace(string(content))
		if trimmed == "" {
			return nil, goerr.Wrap(types.ErrEmptyFile, "plain version file is blank")
		}
		return model.NewExtractedVersion(trimmed), nil

	default:
		return nil, goerr.New("unknown manifest format", goerr.V("format", string(format)))
	}
}

// versionAtKeyPath walks a dotted key path through nested tables. A
// missing or non-table intermediate segment means the path is absent;
// only a present leaf of the wrong type is a type mismatch.
func versionAtKeyPath(doc map[string]any, keyPath string) (*model.ExtractedVersion, error) {
	keys := strings.Split(keyPath, ".")

	current := doc
	for i, key := range keys {
		value, ok := current[key]
		if !ok {
			return nil, goerr.Wrap(types.ErrMissingField, "key path not present",
				goerr.V("key_path", keyPath), goerr.V("missing_at", key))
		}

		if i == len(keys)-1 {
			version, ok := value.(string)
			if !ok {
				return nil, goerr.Wrap(types.ErrTypeMismatch, "version value is not a string",
					goerr.V("key_path", keyPath))
			}
			return model.NewExtractedVersion(version), nil
		}

		table, ok := value.(map[string]any)
		if !ok {
			return nil, goerr.Wrap(types.ErrMissingField, "intermediate key is not a table",
				goerr.V("key_path", keyPath), goerr.V("missing_at", key))
		}
		current = table
	}

	// Unreachable with a non-empty key path; empty paths land here
	return nil, goerr.Wrap(types.ErrMissingField, "empty key path")
}
