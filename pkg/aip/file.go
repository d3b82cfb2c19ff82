package aip

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Profile file formats accepted by SaveAgentFile.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// LoadAgentFile reads an agent profile from a YAML or JSON file,
// selected by extension (.yaml, .yml, .json). Any other extension is a
// hard error. The decoded profile is validated before being returned.
func LoadAgentFile(path string) (*AgentProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading agent file %s: %w", path, err)
	}

	var profile AgentProfile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("parsing YAML in %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("parsing JSON in %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported file format %q (want .yaml, .yml, or .json)", filepath.Ext(path))
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent profile in %s: %w", path, err)
	}
	return &profile, nil
}

// SaveAgentFile writes a profile to path in the given format (FormatYAML
// or FormatJSON). Unset optional fields are omitted, not written as null.
func SaveAgentFile(profile *AgentProfile, path, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(profile)
	case FormatJSON:
		data, err = json.MarshalIndent(profile, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	default:
		return fmt.Errorf("unsupported format %q (want %s or %s)", format, FormatYAML, FormatJSON)
	}
	if err != nil {
		return fmt.Errorf("encoding agent profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing agent file %s: %w", path, err)
	}
	return nil
}

// FormatForPath picks the save format matching a file extension,
// defaulting to JSON for anything that is not .yaml/.yml.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
