package harness

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AndreyAkinshin/gantry/internal/descriptor"
	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/output"
	"github.com/AndreyAkinshin/gantry/internal/runner"
	"github.com/AndreyAkinshin/gantry/internal/supervisor"
	"github.com/AndreyAkinshin/gantry/internal/transcript"
)

// InProcessCheck loads a descriptor, runs targets with a fresh result and
// compares the result value, or the failure message, with the expectation.
type InProcessCheck struct {
	Buildfile   string
	Targets     []string // Empty runs the default target
	LibPath     []string
	Definitions map[string]string
	WantResult  *string
	WantError   *string
}

// Run executes the check and returns the observed result value. A mismatch
// is a KindUnexpectedOutcome error.
func (c InProcessCheck) Run(ctx context.Context) (string, error) {
	p, err := descriptor.Load(c.Buildfile)
	if err != nil {
		return "", err
	}

	r := runner.New(p, runner.Options{
		Log:         output.Discard(),
		LibPath:     c.LibPath,
		Definitions: c.Definitions,
	})
	res, runErr := r.Run(ctx, c.Targets...)
	actual := res.String()

	if c.WantError != nil {
		if runErr == nil {
			return actual, gerrors.UnexpectedOutcome(fmt.Sprintf("build succeeded, want failure %q", *c.WantError))
		}
		if runErr.Error() != *c.WantError {
			return actual, gerrors.UnexpectedOutcome("failure message differs\n" + transcript.Diff(*c.WantError, runErr.Error()))
		}
		return actual, nil
	}
	if runErr != nil {
		return actual, runErr
	}
	if c.WantResult != nil && actual != *c.WantResult {
		return actual, gerrors.UnexpectedOutcome("result differs\n" + transcript.Diff(*c.WantResult, actual))
	}
	return actual, nil
}

// OutOfProcessCheck runs the gantry CLI against a descriptor and compares the
// exit code, then the normalized stdout, with the expectation.
type OutOfProcessCheck struct {
	Tool         supervisor.Tool
	Buildfile    string
	LibPath      []string
	Targets      []string
	Definitions  map[string]string
	WantExitCode int
	WantStdout   *string
	Timeout      time.Duration
}

// Command returns the command line the check supervises.
func (c OutOfProcessCheck) Command() supervisor.Command {
	var args []string
	names := make([]string, 0, len(c.Definitions))
	for name := range c.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		args = append(args, "-D", name+"="+c.Definitions[name])
	}
	args = append(args, c.Targets...)

	cmd := c.Tool.Command(c.Buildfile, c.LibPath, args...)
	cmd.Timeout = c.Timeout
	return cmd
}

// Run executes the check. Spawn and stream failures are returned as they
// are; mismatches are KindUnexpectedOutcome errors that include stderr.
func (c OutOfProcessCheck) Run(ctx context.Context) (supervisor.Outcome, error) {
	outcome, err := supervisor.Run(ctx, c.Command())
	if err != nil {
		return outcome, err
	}

	if outcome.ExitCode != c.WantExitCode {
		return outcome, gerrors.UnexpectedOutcome(
			fmt.Sprintf("exit code %d, want %d%s", outcome.ExitCode, c.WantExitCode, stderrSuffix(outcome.Stderr)))
	}
	if c.WantStdout != nil {
		got := transcript.Normalize(outcome.Stdout)
		if diff := transcript.Diff(*c.WantStdout, got); diff != "" {
			return outcome, gerrors.UnexpectedOutcome("stdout differs\n" + diff + stderrSuffix(outcome.Stderr))
		}
	}
	return outcome, nil
}

func stderrSuffix(stderr string) string {
	stderr = strings.TrimRight(stderr, "\n")
	if stderr == "" {
		return ""
	}
	return "\nstderr:\n" + stderr
}
