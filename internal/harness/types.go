// Package harness runs acceptance checks against descriptors, either by
// executing targets in-process or by supervising the gantry CLI.
package harness

import (
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
)

// Check modes.
const (
	ModeInProcess    = "in-process"
	ModeOutOfProcess = "out-of-process"
)

// Suite is a list of acceptance checks loaded from YAML.
type Suite struct {
	Path      string   `yaml:"-"`         // File the suite was loaded from
	Buildfile string   `yaml:"buildfile"` // Default descriptor of every check
	Lib       []string `yaml:"lib"`       // Default library path of every check
	Checks    []Check  `yaml:"checks"`
}

// Check is a single acceptance check.
type Check struct {
	Name        string            `yaml:"name"`
	Mode        string            `yaml:"mode"` // ModeInProcess (default) or ModeOutOfProcess
	Buildfile   string            `yaml:"buildfile"`
	Targets     []string          `yaml:"targets"`
	Lib         []string          `yaml:"lib"`
	Definitions map[string]string `yaml:"definitions"`
	Result      *string           `yaml:"result"`    // Expected result value
	Error       *string           `yaml:"error"`     // Expected failure message
	ExitCode    *ExitCode         `yaml:"exit_code"` // Expected exit code, out-of-process only
	Stdout      *string           `yaml:"stdout"`    // Expected normalized stdout, out-of-process only
	Timeout     string            `yaml:"timeout"`
}

// ExitCode is an expected exit code. Failure stands for the platform's
// failure code, see FailureExitCode.
type ExitCode struct {
	Code    int
	Failure bool
}

// UnmarshalYAML accepts an integer or the string "failure".
func (e *ExitCode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Value == "failure" {
		e.Failure = true
		return nil
	}
	return node.Decode(&e.Code)
}

// Want returns the exit code expected on goos.
func (e ExitCode) Want(goos string) int {
	if e.Failure {
		return FailureExitCode(goos)
	}
	return e.Code
}

// FailureExitCode returns the exit code a failed build reports on goos.
// Batch launchers run through cmd.exe lose the status, so Windows reports 0.
func FailureExitCode(goos string) int {
	if goos == "windows" {
		return gerrors.ExitSuccess
	}
	return gerrors.ExitBuildFailed
}

// CheckResult is the outcome of running one check.
type CheckResult struct {
	Check    *Check
	Passed   bool
	Actual   string // Observed result value or normalized stdout
	Stderr   string // Captured stderr, out-of-process only
	Error    error  // Why the check failed
	Duration time.Duration
}

// SuiteResult is the outcome of running every check of a suite.
type SuiteResult struct {
	Suite   string
	Results []CheckResult
	Passed  int
	Failed  int
}

func defaultGOOS() string {
	return runtime.GOOS
}
