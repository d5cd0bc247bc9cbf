package harness

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/output"
	"github.com/AndreyAkinshin/gantry/internal/supervisor"
	"github.com/AndreyAkinshin/gantry/internal/transcript"
)

// DefaultTimeout bounds out-of-process checks that do not set a timeout.
const DefaultTimeout = 5 * time.Minute

// Harness runs suites and reports each check as it finishes.
type Harness struct {
	Tool supervisor.Tool // gantry executable for out-of-process checks
	Log  *output.Writer  // Receives PASS/FAIL lines; nil discards them
	GOOS string          // Platform expectations are computed for; empty is the host
}

// RunSuite runs every check in order. A failing check never stops the
// suite; the returned error is non-nil when any check failed.
func (h *Harness) RunSuite(ctx context.Context, s *Suite) (*SuiteResult, error) {
	log := h.Log
	if log == nil {
		log = output.Discard()
	}

	result := &SuiteResult{Suite: s.Path}
	for i := range s.Checks {
		cr := h.RunCheck(ctx, &s.Checks[i])
		result.Results = append(result.Results, cr)
		if cr.Passed {
			result.Passed++
			log.CheckPassed(cr.Check.Name)
		} else {
			result.Failed++
			log.CheckFailed(cr.Check.Name, cr.Error)
		}
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
	}

	if result.Failed > 0 {
		return result, gerrors.Buildf("%d of %d checks failed", result.Failed, len(s.Checks))
	}
	return result, nil
}

// RunCheck runs a single check. Every check gets its own result sink.
func (h *Harness) RunCheck(ctx context.Context, c *Check) CheckResult {
	started := time.Now()
	cr := CheckResult{Check: c}

	zerolog.Ctx(ctx).Debug().Str("check", c.Name).Str("mode", c.Mode).Msg("running check")

	switch c.Mode {
	case ModeOutOfProcess:
		outcome, err := h.outOfProcess(c).Run(ctx)
		cr.Actual = transcript.Normalize(outcome.Stdout)
		cr.Stderr = outcome.Stderr
		cr.Error = err
	default:
		actual, err := InProcessCheck{
			Buildfile:   c.Buildfile,
			Targets:     c.Targets,
			LibPath:     c.Lib,
			Definitions: c.Definitions,
			WantResult:  c.Result,
			WantError:   c.Error,
		}.Run(ctx)
		cr.Actual = actual
		cr.Error = err
	}

	cr.Passed = cr.Error == nil
	cr.Duration = time.Since(started)
	return cr
}

func (h *Harness) outOfProcess(c *Check) OutOfProcessCheck {
	goos := h.GOOS
	if goos == "" {
		goos = defaultGOOS()
	}
	tool := h.Tool
	if tool.GOOS == "" {
		tool.GOOS = goos
	}

	want := gerrors.ExitSuccess
	if c.ExitCode != nil {
		want = c.ExitCode.Want(goos)
	}

	timeout := DefaultTimeout
	if c.Timeout != "" {
		// Validated by LoadSuite.
		timeout, _ = time.ParseDuration(c.Timeout)
	}

	return OutOfProcessCheck{
		Tool:         tool,
		Buildfile:    c.Buildfile,
		LibPath:      c.Lib,
		Targets:      c.Targets,
		Definitions:  c.Definitions,
		WantExitCode: want,
		WantStdout:   c.Stdout,
		Timeout:      timeout,
	}
}
