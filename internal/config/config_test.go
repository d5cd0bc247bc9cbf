package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDescriptor(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "build.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func parseDescriptor(t *testing.T, content string) *Descriptor {
	t.Helper()
	d, _, err := LoadWithWarnings("build.json", []byte(content))
	if err != nil {
		t.Fatalf("LoadWithWarnings() error = %v", err)
	}
	return d
}

func TestLoadWithWarnings_Minimal(t *testing.T) {
	d := parseDescriptor(t, `{"project": {"name": "demo"}}`)

	if d.Project.Name != "demo" {
		t.Errorf("Project.Name = %q, want %q", d.Project.Name, "demo")
	}
	if d.Project.BaseDir != "" {
		t.Errorf("Project.BaseDir = %q, want empty before defaults", d.Project.BaseDir)
	}
}

func TestLoadAndValidate_FileNotFound(t *testing.T) {
	_, _, err := LoadAndValidate(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "failed to read descriptor") {
		t.Errorf("LoadAndValidate() error = %v, want read error", err)
	}
}

func TestLoadWithWarnings_InvalidJSON(t *testing.T) {
	_, _, err := LoadWithWarnings("build.json", []byte(`{"project": `))
	if err == nil || !strings.Contains(err.Error(), "failed to parse descriptor") {
		t.Errorf("LoadWithWarnings() error = %v, want parse error", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	d := parseDescriptor(t, `{
		"project": {"name": "demo"},
		"targets": [{"name": "a", "tasks": [
			{"result": {"value": "x"}},
			{"gant": {}},
			{"fail": {}}
		]}]
	}`)

	applyDefaults(d)

	if d.Project.BaseDir != DefaultBaseDir {
		t.Errorf("BaseDir = %q, want %q", d.Project.BaseDir, DefaultBaseDir)
	}
	if d.Properties == nil {
		t.Error("Properties = nil, want empty map")
	}
	tasks := d.Targets[0].Tasks
	if tasks[0].Result.Mode != ResultModeAppend {
		t.Errorf("result mode = %q, want %q", tasks[0].Result.Mode, ResultModeAppend)
	}
	if tasks[1].Gant.File != DefaultGantfile {
		t.Errorf("gant file = %q, want %q", tasks[1].Gant.File, DefaultGantfile)
	}
	if tasks[2].Fail.Message != DefaultFailMessage {
		t.Errorf("fail message = %q, want %q", tasks[2].Fail.Message, DefaultFailMessage)
	}
}

func TestLoadAndValidate_Fixture(t *testing.T) {
	path := filepath.Join("..", "..", "test", "fixtures", "gantTest.json")

	d, warnings, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if d.Project.Name != "Gant Ant Task Test" {
		t.Errorf("Project.Name = %q", d.Project.Name)
	}
	if d.Project.Default != "gantTestDefaultFileDefaultTarget" {
		t.Errorf("Project.Default = %q", d.Project.Default)
	}
}

func TestLoadAndValidate_SchemaError(t *testing.T) {
	path := writeDescriptor(t, `{"project": {"name": "demo"}, "targets": [{"name": "a", "tasks": [{"copy": {}}]}]}`)

	_, _, err := LoadAndValidate(path)
	if err == nil || !strings.Contains(err.Error(), "descriptor validation failed") {
		t.Errorf("LoadAndValidate() error = %v, want schema error", err)
	}
}

func TestLoadAndValidate_DuplicateTarget(t *testing.T) {
	path := writeDescriptor(t, `{"project": {"name": "demo"}, "targets": [{"name": "a"}, {"name": "a"}]}`)

	_, _, err := LoadAndValidate(path)
	if err == nil || !strings.Contains(err.Error(), `duplicate target "a"`) {
		t.Errorf("LoadAndValidate() error = %v, want duplicate target", err)
	}
}

func TestLoadAndValidate_CombinesWarnings(t *testing.T) {
	path := writeDescriptor(t, `{
		"project": {"name": "demo", "default": "missing"},
		"extra": true,
		"targets": [{"name": "a", "depends": ["later"]}]
	}`)

	_, warnings, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}

	for _, want := range []string{`"extra"`, `default target "missing"`, `undefined target "later"`} {
		found := false
		for _, w := range warnings {
			if strings.Contains(w, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("warnings %v missing %s", warnings, want)
		}
	}
}

func TestGantTask_Names(t *testing.T) {
	tests := []struct {
		name string
		task GantTask
		want string
	}{
		{"none", GantTask{}, ""},
		{"single", GantTask{Target: "a"}, "a"},
		{"list", GantTask{Targets: []string{"a", "b"}}, "a,b"},
		{"both", GantTask{Target: "a", Targets: []string{"b"}}, "a,b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.Join(tt.task.Names(), ","); got != tt.want {
				t.Errorf("Names() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTaskConfig_Kind(t *testing.T) {
	tests := []struct {
		name string
		task TaskConfig
		want string
	}{
		{"empty", TaskConfig{}, ""},
		{"echo", TaskConfig{Echo: &EchoTask{}}, "echo"},
		{"result", TaskConfig{Result: &ResultTask{}}, "result"},
		{"gant", TaskConfig{Gant: &GantTask{}}, "gant"},
		{"sh", TaskConfig{Sh: &ShTask{}}, "sh"},
		{"fail", TaskConfig{Fail: &FailTask{}}, "fail"},
		{"several", TaskConfig{Echo: &EchoTask{}, Fail: &FailTask{}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Kind(); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}
