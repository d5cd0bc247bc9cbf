package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateDescriptor_Valid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"minimal", `{"project": {"name": "demo"}}`},
		{"schema field", `{"$schema": "descriptor.schema.json", "project": {"name": "demo"}}`},
		{"full", `{
			"project": {"name": "demo", "default": "all", "basedir": "."},
			"properties": {"greeting": "hello"},
			"targets": [
				{"name": "init", "tasks": [{"echo": {"message": "hi"}}]},
				{"name": "all", "depends": ["init"], "tasks": [
					{"result": {"value": "x", "mode": "set"}},
					{"gant": {"file": "build.gant", "targets": ["a", "b"], "definitions": [{"name": "flob", "value": "adob"}, {"name": "burble"}]}},
					{"sh": {"command": "true"}},
					{"fail": {}}
				]}
			]
		}`},
		{"undefined dependency is structurally valid", `{
			"project": {"name": "demo"},
			"targets": [{"name": "a", "depends": ["later"]}]
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateDescriptor([]byte(tt.data)); err != nil {
				t.Errorf("ValidateDescriptor() error = %v", err)
			}
		})
	}
}

func TestValidateDescriptor_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing project", `{}`},
		{"missing name", `{"project": {}}`},
		{"empty name", `{"project": {"name": ""}}`},
		{"targets not array", `{"project": {"name": "demo"}, "targets": {}}`},
		{"target without name", `{"project": {"name": "demo"}, "targets": [{}]}`},
		{"unknown task", `{"project": {"name": "demo"}, "targets": [{"name": "a", "tasks": [{"copy": {}}]}]}`},
		{"two tasks in one entry", `{"project": {"name": "demo"}, "targets": [{"name": "a", "tasks": [{"echo": {"message": "x"}, "fail": {}}]}]}`},
		{"bad result mode", `{"project": {"name": "demo"}, "targets": [{"name": "a", "tasks": [{"result": {"value": "x", "mode": "prepend"}}]}]}`},
		{"definition without name", `{"project": {"name": "demo"}, "targets": [{"name": "a", "tasks": [{"gant": {"definitions": [{"value": "x"}]}}]}]}`},
		{"property not string", `{"project": {"name": "demo"}, "properties": {"n": 1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateDescriptor([]byte(tt.data)); err == nil {
				t.Error("ValidateDescriptor() error = nil, want error")
			}
		})
	}
}

func TestValidateDescriptor_InvalidJSON(t *testing.T) {
	err := ValidateDescriptor([]byte(`{not json`))
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("ValidateDescriptor() error = %v, want invalid JSON", err)
	}
}

func TestValidateDescriptor_Fixture(t *testing.T) {
	path := filepath.Join("..", "..", "test", "fixtures", "gantTest.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	if err := ValidateDescriptor(data); err != nil {
		t.Errorf("expected valid descriptor, got error: %v", err)
	}
}

func TestValidateSuite(t *testing.T) {
	valid := `{"buildfile": "gantTest.json", "checks": [
		{"name": "default", "result": "A test target in the default file."},
		{"name": "cli", "mode": "out-of-process", "exit_code": 0, "stdout": "Buildfile: x\n"},
		{"name": "broken", "mode": "out-of-process", "exit_code": "failure"}
	]}`
	if err := ValidateSuite([]byte(valid)); err != nil {
		t.Errorf("ValidateSuite(valid) error = %v", err)
	}

	invalid := []string{
		`{}`,
		`{"checks": [{}]}`,
		`{"checks": [{"name": "x", "mode": "remote"}]}`,
		`{"checks": [{"name": "x", "exit_code": "one"}]}`,
	}
	for _, data := range invalid {
		if err := ValidateSuite([]byte(data)); err == nil {
			t.Errorf("ValidateSuite(%s) error = nil, want error", data)
		}
	}
}
