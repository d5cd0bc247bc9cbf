package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestGantryError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *GantryError
		expected string
	}{
		{
			name:     "message only",
			err:      &GantryError{Message: "something failed"},
			expected: "something failed",
		},
		{
			name:     "with target",
			err:      &GantryError{Target: "compile", Message: "build failed"},
			expected: "[compile] build failed",
		},
		{
			name:     "with target and task",
			err:      &GantryError{Target: "compile", Task: "sh", Message: "exit status 2"},
			expected: "[compile] sh: exit status 2",
		},
		{
			name:     "task without target not included",
			err:      &GantryError{Task: "sh", Message: "something failed"},
			expected: "something failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGantryError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &GantryError{
		Message: "wrapper",
		Cause:   cause,
	}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}

	errNoCause := &GantryError{Message: "no cause"}
	if got := errNoCause.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestGantryError_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		kind     ErrorKind
		expected int
	}{
		{"runtime", KindRuntime, ExitBuildFailed},
		{"config", KindConfig, ExitConfigError},
		{"build", KindBuild, ExitBuildFailed},
		{"target not found", KindTargetNotFound, ExitBuildFailed},
		{"resource not found", KindResourceNotFound, ExitBuildFailed},
		{"environment", KindEnvironment, ExitEnvironmentError},
		{"spawn", KindProcessSpawn, ExitEnvironmentError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &GantryError{Kind: tt.kind}
			if got := err.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestTargetNotFound(t *testing.T) {
	err := TargetNotFound("blahBlahBlahBlah", "Gant Ant Task Test")

	if err.Kind != KindTargetNotFound {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTargetNotFound)
	}
	expected := "Target \"blahBlahBlahBlah\" does not exist in the project \"Gant Ant Task Test\". "
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestTargetNotFound_NamesVerbatim(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		project  string
		expected string
	}{
		{"backslash", `C:\build`, "demo", `Target "C:\build" does not exist in the project "demo". `},
		{"quotes", "x", `Gant "Ant" Test`, `Target "x" does not exist in the project "Gant "Ant" Test". `},
		{"non-ascii", "zielä", "prøject", `Target "zielä" does not exist in the project "prøject". `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TargetNotFound(tt.target, tt.project).Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}

	dep := DependencyNotFound(`a\b`, `"p"`, `c"d`).Error()
	want := `Target "a\b" does not exist in the project ""p"". It is used from target "c"d".`
	if dep != want {
		t.Errorf("DependencyNotFound().Error() = %q, want %q", dep, want)
	}
}

func TestCyclicDependency_KeepsCause(t *testing.T) {
	cause := errors.New("circular dependency detected involving \"a\" (a -> b -> a)")
	err := CyclicDependency(cause)

	if err.Kind != KindCyclicDependency {
		t.Errorf("Kind = %v, want %v", err.Kind, KindCyclicDependency)
	}
	if err.Error() != cause.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), cause.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestDependencyNotFound(t *testing.T) {
	err := DependencyNotFound("init", "demo", "compile")

	expected := `Target "init" does not exist in the project "demo". It is used from target "compile".`
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestResourceNotFound(t *testing.T) {
	err := ResourceNotFound("Gantfile does not exist.")
	if err.Error() != "Gantfile does not exist." {
		t.Errorf("Error() = %q", err.Error())
	}
	if !Is(err, KindResourceNotFound) {
		t.Error("Is(KindResourceNotFound) = false, want true")
	}
}

func TestConfigf(t *testing.T) {
	err := Configf("field %q: %s", "name", "is required")

	if err.Kind != KindConfig {
		t.Errorf("Kind = %v, want %v", err.Kind, KindConfig)
	}
	expected := `field "name": is required`
	if err.Message != expected {
		t.Errorf("Message = %q, want %q", err.Message, expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("original error")
	err := Wrap(cause, "wrapped message")

	if err.Kind != KindRuntime {
		t.Errorf("Kind = %v, want %v", err.Kind, KindRuntime)
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap() should return original cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs_ThroughWrapping(t *testing.T) {
	inner := CyclicDependency(errors.New("circular dependency detected involving \"a\""))
	wrapped := fmt.Errorf("planning: %w", inner)

	if !Is(wrapped, KindCyclicDependency) {
		t.Error("Is(wrapped, KindCyclicDependency) = false, want true")
	}
	if Is(wrapped, KindTargetNotFound) {
		t.Error("Is(wrapped, KindTargetNotFound) = true, want false")
	}
	if Is(errors.New("plain"), KindRuntime) {
		t.Error("Is(plain error) = true, want false")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"runtime", Wrap(errors.New("boom"), "runtime"), ExitBuildFailed},
		{"config", Config("config"), ExitConfigError},
		{"wrapped config", fmt.Errorf("ctx: %w", Config("config")), ExitConfigError},
		{"environment", Environment("no tool"), ExitEnvironmentError},
		{"generic error", errors.New("generic"), ExitBuildFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	if got := KindUnexpectedOutcome.String(); got != "unexpected outcome" {
		t.Errorf("String() = %q", got)
	}
	if got := ErrorKind(99).String(); got != "kind(99)" {
		t.Errorf("String() = %q", got)
	}
}

func TestUnexpectedOutcome(t *testing.T) {
	err := UnexpectedOutcome("exit code 0, want 1")
	if err.Error() != "exit code 0, want 1" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !Is(err, KindUnexpectedOutcome) {
		t.Error("Is(KindUnexpectedOutcome) = false, want true")
	}
	if got := GetExitCode(err); got != ExitBuildFailed {
		t.Errorf("GetExitCode() = %d, want %d", got, ExitBuildFailed)
	}
}
