package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/skill-twin-engine/internal/schemas"
)

// ConfigError is returned when a taxonomy file cannot be read, fails schema
// validation, or contains an ambiguous alias table.
type ConfigError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		if e.Cause != nil {
			return fmt.Sprintf("taxonomy %s: %s: %v", e.Path, e.Message, e.Cause)
		}
		return fmt.Sprintf("taxonomy %s: %s", e.Path, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("taxonomy: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("taxonomy: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Load reads a YAML or JSON taxonomy file.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Message: "failed to read file", Cause: err}
	}
	return Parse(data, path)
}

// Parse validates data against the taxonomy schema and builds a Taxonomy.
// origin is only used to label errors.
func Parse(data []byte, origin string) (*Taxonomy, error) {
	if err := schemas.ValidateDocument(schemas.Taxonomy, data); err != nil {
		return nil, &ConfigError{Path: origin, Message: "schema validation failed", Cause: err}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Path: origin, Message: "failed to decode", Cause: err}
	}

	t, err := New(doc)
	if err != nil {
		if ce, ok := err.(*ConfigError); ok {
			ce.Path = origin
		}
		return nil, err
	}
	return t, nil
}
