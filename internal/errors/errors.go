// Package errors provides structured error types and exit codes for gantry.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the gantry CLI.
const (
	ExitSuccess          = 0 // Success
	ExitBuildFailed      = 1 // Build failed (target failure, unknown target, etc.)
	ExitConfigError      = 2 // Configuration error (invalid descriptor, bad flags, etc.)
	ExitEnvironmentError = 3 // Environment error (tool not found, cannot spawn, etc.)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindBuild
	KindTargetNotFound
	KindResourceNotFound
	KindCyclicDependency
	KindProcessSpawn
	KindStreamRead
	KindUnexpectedOutcome
	KindEnvironment
)

var kindNames = map[ErrorKind]string{
	KindRuntime:           "runtime",
	KindConfig:            "config",
	KindBuild:             "build",
	KindTargetNotFound:    "target not found",
	KindResourceNotFound:  "resource not found",
	KindCyclicDependency:  "cyclic dependency",
	KindProcessSpawn:      "process spawn",
	KindStreamRead:        "stream read",
	KindUnexpectedOutcome: "unexpected outcome",
	KindEnvironment:       "environment",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// GantryError is the base error type for gantry.
type GantryError struct {
	Kind    ErrorKind
	Message string
	Target  string // Target name if applicable
	Task    string // Task name if applicable
	Cause   error  // Underlying error
}

func (e *GantryError) Error() string {
	if e.Target != "" && e.Task != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Target, e.Task, e.Message)
	}
	if e.Target != "" {
		return fmt.Sprintf("[%s] %s", e.Target, e.Message)
	}
	return e.Message
}

func (e *GantryError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *GantryError) ExitCode() int {
	switch e.Kind {
	case KindConfig:
		return ExitConfigError
	case KindEnvironment, KindProcessSpawn:
		return ExitEnvironmentError
	default:
		return ExitBuildFailed
	}
}

// Config creates a new configuration error.
func Config(message string) *GantryError {
	return &GantryError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *GantryError {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates a new environment error.
func Environment(message string) *GantryError {
	return &GantryError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *GantryError {
	return Environment(fmt.Sprintf(format, args...))
}

// Build creates a build failure, the error a target body raises.
func Build(message string) *GantryError {
	return &GantryError{
		Kind:    KindBuild,
		Message: message,
	}
}

// Buildf creates a build failure with formatting.
func Buildf(format string, args ...interface{}) *GantryError {
	return Build(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *GantryError {
	return &GantryError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// WrapKind wraps an error as the given kind. The message is kept verbatim.
func WrapKind(kind ErrorKind, err error, message string) *GantryError {
	return &GantryError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// TaskError creates an error for a task running inside a target.
func TaskError(target, task, message string) *GantryError {
	return &GantryError{
		Kind:    KindBuild,
		Target:  target,
		Task:    task,
		Message: message,
	}
}

// TargetNotFound reports a requested target missing from a project.
// Names are inserted verbatim and the trailing space is part of the
// established message format.
func TargetNotFound(name, project string) *GantryError {
	return &GantryError{
		Kind:    KindTargetNotFound,
		Message: fmt.Sprintf(`Target "%s" does not exist in the project "%s". `, name, project),
	}
}

// DependencyNotFound reports a dependency missing from a project at execution time.
func DependencyNotFound(name, project, usedFrom string) *GantryError {
	return &GantryError{
		Kind: KindTargetNotFound,
		Message: fmt.Sprintf(`Target "%s" does not exist in the project "%s". It is used from target "%s".`,
			name, project, usedFrom),
	}
}

// CyclicDependency reports a dependency cycle found while planning an execution.
func CyclicDependency(cause error) *GantryError {
	return &GantryError{
		Kind:    KindCyclicDependency,
		Message: cause.Error(),
		Cause:   cause,
	}
}

// ResourceNotFound reports a referenced descriptor or script that does not exist.
func ResourceNotFound(message string) *GantryError {
	return &GantryError{
		Kind:    KindResourceNotFound,
		Message: message,
	}
}

// UnexpectedOutcome reports an acceptance check whose observed exit code,
// transcript or result differs from the expectation.
func UnexpectedOutcome(message string) *GantryError {
	return &GantryError{
		Kind:    KindUnexpectedOutcome,
		Message: message,
	}
}

// Is reports whether err is or wraps a GantryError of the given kind.
func Is(err error, kind ErrorKind) bool {
	var ge *GantryError
	if errors.As(err, &ge) {
		return ge.Kind == kind
	}
	return false
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ge *GantryError
	if errors.As(err, &ge) {
		return ge.ExitCode()
	}
	return ExitBuildFailed
}
