package verification

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gmonad/gmd-deploy/internal/domain/models"
)

// StandardJSONInput rebuilds the solc standard JSON input from a contract's
// metadata and sources.
func StandardJSONInput(bundle *models.SourceBundle) (string, error) {
	var meta struct {
		Language string                     `json:"language"`
		Settings map[string]json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal([]byte(bundle.Metadata), &meta); err != nil {
		return "", fmt.Errorf("failed to parse metadata: %w", err)
	}

	settings := make(map[string]any, len(meta.Settings))
	for key, value := range meta.Settings {
		switch key {
		case "compilationTarget":
			// metadata-only field
		case "libraries":
			libs, err := nestLibraries(value)
			if err != nil {
				return "", err
			}
			if len(libs) > 0 {
				settings[key] = libs
			}
		default:
			settings[key] = value
		}
	}
	settings["outputSelection"] = map[string]map[string][]string{
		"*": {"*": {"abi", "evm.bytecode", "evm.deployedBytecode", "metadata"}},
	}

	sources := make(map[string]map[string]string, len(bundle.Sources))
	for name, content := range bundle.Sources {
		sources[name] = map[string]string{"content": content}
	}

	language := meta.Language
	if language == "" {
		language = "Solidity"
	}

	out, err := json.Marshal(map[string]any{
		"language": language,
		"sources":  sources,
		"settings": settings,
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// nestLibraries converts metadata's {"file:Lib": "0x.."} into {"file": {"Lib": "0x.."}}
func nestLibraries(raw json.RawMessage) (map[string]map[string]string, error) {
	var flat map[string]string
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("failed to parse libraries: %w", err)
	}

	nested := make(map[string]map[string]string)
	for key, address := range flat {
		file, name := "", key
		if i := strings.LastIndex(key, ":"); i >= 0 {
			file, name = key[:i], key[i+1:]
		}
		if nested[file] == nil {
			nested[file] = make(map[string]string)
		}
		nested[file][name] = address
	}
	return nested, nil
}
