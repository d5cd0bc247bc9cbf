package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// LoadWithWarnings parses descriptor data and returns any unknown field warnings.
func LoadWithWarnings(path string, data []byte) (*Descriptor, []string, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, nil, fmt.Errorf("failed to parse descriptor %s: %w", path, err)
	}

	// Detect unknown fields
	warnings := detectUnknownFields(data)

	return &d, warnings, nil
}

// detectUnknownFields compares raw JSON with known struct fields.
// Note: Since this is called after successful parsing, a parse failure
// here would indicate an unexpected internal inconsistency.
func detectUnknownFields(data []byte) []string {
	var warnings []string

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []string{"internal: failed to re-parse descriptor for unknown field detection"}
	}

	knownTopLevel := getJSONFields(reflect.TypeOf(Descriptor{}))
	for key := range raw {
		if key == "$schema" {
			continue // $schema is explicitly allowed and ignored
		}
		if !knownTopLevel[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
		}
	}

	if projectRaw, ok := raw["project"]; ok {
		warnings = append(warnings, checkObjectUnknownFields(projectRaw, reflect.TypeOf(ProjectConfig{}), "in project")...)
	}

	if targetsRaw, ok := raw["targets"]; ok {
		warnings = append(warnings, checkTargetsUnknownFields(targetsRaw)...)
	}

	return warnings
}

func checkTargetsUnknownFields(data json.RawMessage) []string {
	var warnings []string

	var targets []json.RawMessage
	if err := json.Unmarshal(data, &targets); err != nil {
		// Should not happen since Descriptor.Targets parsed successfully.
		return []string{"internal: failed to re-parse targets for unknown field detection"}
	}

	targetType := reflect.TypeOf(TargetConfig{})
	for i, targetRaw := range targets {
		var header struct {
			Name string `json:"name"`
		}
		_ = json.Unmarshal(targetRaw, &header)
		where := fmt.Sprintf("in target %q", header.Name)
		if header.Name == "" {
			where = fmt.Sprintf("in targets[%d]", i)
		}
		warnings = append(warnings, checkObjectUnknownFields(targetRaw, targetType, where)...)
	}

	return warnings
}

func checkObjectUnknownFields(data json.RawMessage, t reflect.Type, where string) []string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	known := getJSONFields(t)
	var warnings []string
	for key := range fields {
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q %s (ignored)", key, where))
		}
	}
	return warnings
}

// getJSONFields returns a map of known JSON field names for a struct type.
func getJSONFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		// Extract field name from tag (before comma)
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = true
		}
	}
	return fields
}
