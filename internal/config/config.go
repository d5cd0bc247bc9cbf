package config

import (
	"fmt"
	"os"

	"github.com/AndreyAkinshin/gantry/internal/schema"
)

// LoadAndValidate reads a descriptor, checks it against the schema, applies
// defaults, validates it, and returns warnings.
func LoadAndValidate(path string) (*Descriptor, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read descriptor: %w", err)
	}

	if err := schema.ValidateDescriptor(data); err != nil {
		return nil, nil, err
	}

	d, unknownWarnings, err := LoadWithWarnings(path, data)
	if err != nil {
		return nil, nil, err
	}

	applyDefaults(d)

	validationWarnings, err := Validate(d)

	// Combine warnings from both sources.
	allWarnings := make([]string, 0, len(unknownWarnings)+len(validationWarnings))
	allWarnings = append(allWarnings, unknownWarnings...)
	allWarnings = append(allWarnings, validationWarnings...)

	if err != nil {
		return nil, allWarnings, err
	}

	return d, allWarnings, nil
}
