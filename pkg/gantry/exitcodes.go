// Package gantry provides public constants for external tools integrating
// with gantry.
package gantry

// Exit codes returned by the gantry CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates the build completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a failed build (target failure, unknown target, missing script, etc.).
	ExitFailure = 1

	// ExitConfigError indicates a configuration error (invalid descriptor, bad flags, etc.).
	ExitConfigError = 2

	// ExitEnvError indicates an environment error (executable not found, cannot spawn, etc.).
	ExitEnvError = 3
)
