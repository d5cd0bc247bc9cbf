package config

import (
	"strings"
	"testing"
)

func containsWarning(warnings []string, parts ...string) bool {
	for _, w := range warnings {
		ok := true
		for _, p := range parts {
			if !strings.Contains(w, p) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func TestLoadWithWarnings_UnknownRootField(t *testing.T) {
	data := []byte(`{
		"project": {"name": "demo"},
		"unknown_field": "value"
	}`)

	d, warnings, err := LoadWithWarnings("test.json", data)
	if err != nil {
		t.Fatalf("LoadWithWarnings() error = %v", err)
	}
	if d.Project.Name != "demo" {
		t.Errorf("Project.Name = %q, want %q", d.Project.Name, "demo")
	}
	if !containsWarning(warnings, "unknown_field", "root level") {
		t.Errorf("Expected warning about unknown_field, got %v", warnings)
	}
}

func TestLoadWithWarnings_SchemaFieldIgnored(t *testing.T) {
	data := []byte(`{
		"$schema": "descriptor.schema.json",
		"project": {"name": "demo"}
	}`)

	_, warnings, err := LoadWithWarnings("test.json", data)
	if err != nil {
		t.Fatalf("LoadWithWarnings() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
}

func TestLoadWithWarnings_UnknownProjectField(t *testing.T) {
	data := []byte(`{"project": {"name": "demo", "version": "1.0"}}`)

	_, warnings, err := LoadWithWarnings("test.json", data)
	if err != nil {
		t.Fatalf("LoadWithWarnings() error = %v", err)
	}
	if !containsWarning(warnings, `"version"`, "in project") {
		t.Errorf("Expected warning about version in project, got %v", warnings)
	}
}

func TestLoadWithWarnings_UnknownTargetField(t *testing.T) {
	data := []byte(`{
		"project": {"name": "demo"},
		"targets": [
			{"name": "compile", "unknown_target_field": "value"},
			{"depends_on": ["compile"]}
		]
	}`)

	_, warnings, err := LoadWithWarnings("test.json", data)
	if err != nil {
		t.Fatalf("LoadWithWarnings() error = %v", err)
	}
	if !containsWarning(warnings, "unknown_target_field", `"compile"`) {
		t.Errorf("Expected warning about unknown_target_field in compile, got %v", warnings)
	}
	if !containsWarning(warnings, "depends_on", "targets[1]") {
		t.Errorf("Expected warning about depends_on in targets[1], got %v", warnings)
	}
}

func TestLoadWithWarnings_InvalidJSON_NamesFile(t *testing.T) {
	_, _, err := LoadWithWarnings("broken.json", []byte(`{`))
	if err == nil || !strings.Contains(err.Error(), "broken.json") {
		t.Errorf("LoadWithWarnings() error = %v, want parse error naming the file", err)
	}
}
