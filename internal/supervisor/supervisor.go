// Package supervisor runs child processes and captures both of their output
// streams without risking a pipe-buffer deadlock.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
)

// ErrTimeout is wrapped by the error Run returns when Command.Timeout elapses.
var ErrTimeout = errors.New("process timed out")

// Command describes a process to run.
type Command struct {
	Path    string
	Args    []string
	Dir     string        // Working directory; empty uses the current one
	Env     []string      // Added to the supervisor's environment
	Timeout time.Duration // Zero means no limit
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// Outcome is the observed result of a finished process.
type Outcome struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Started  time.Time
	Stopped  time.Time
}

// Elapsed returns how long the process ran.
func (o Outcome) Elapsed() time.Duration {
	return o.Stopped.Sub(o.Started)
}

// Run starts cmd, drains its stdout and stderr concurrently, waits for it to
// exit and returns what it produced. A non-zero exit code is reported in the
// Outcome, not as an error.
func Run(ctx context.Context, cmd Command) (Outcome, error) {
	log := zerolog.Ctx(ctx)

	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	} else {
		log.Warn().Str("command", cmd.String()).Msg("no timeout set, process may run forever")
	}

	outR, outW, err := os.Pipe()
	if err != nil {
		return Outcome{}, spawnError(cmd, err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		outR.Close()
		outW.Close()
		return Outcome{}, spawnError(cmd, err)
	}
	defer outR.Close()
	defer errR.Close()

	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Stdout = outW
	c.Stderr = errW

	started := time.Now()
	err = c.Start()
	// The child holds its own copies; ours must go so the drains see EOF.
	outW.Close()
	errW.Close()
	if err != nil {
		return Outcome{}, spawnError(cmd, err)
	}
	log.Debug().Str("command", cmd.String()).Int("pid", c.Process.Pid).Msg("process started")

	stdout := StartDrain(outR)
	stderr := StartDrain(errR)

	waitErr := c.Wait()
	stopped := time.Now()

	// Background descendants can keep the pipes open after the child exits,
	// so the drains are bounded by ctx as well.
	drained := make(chan struct{})
	go func() {
		stdout.Wait()
		stderr.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-ctx.Done():
		outR.Close()
		errR.Close()
		<-drained
	}

	if ctx.Err() != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Outcome{}, gerrors.WrapKind(gerrors.KindRuntime, ErrTimeout,
				fmt.Sprintf("%s: process timed out after %s", cmd, cmd.Timeout))
		}
		return Outcome{}, ctx.Err()
	}

	outText, outErr := stdout.Wait()
	errText, errErr := stderr.Wait()
	if outErr != nil {
		return Outcome{}, outErr
	}
	if errErr != nil {
		return Outcome{}, errErr
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return Outcome{}, spawnError(cmd, waitErr)
	}

	outcome := Outcome{
		ExitCode: c.ProcessState.ExitCode(),
		Stdout:   outText,
		Stderr:   errText,
		Started:  started,
		Stopped:  stopped,
	}
	log.Debug().
		Str("command", cmd.String()).
		Int("exit_code", outcome.ExitCode).
		Dur("elapsed", outcome.Elapsed()).
		Int("stdout_bytes", len(outText)).
		Int("stderr_bytes", len(errText)).
		Msg("process exited")
	return outcome, nil
}

func spawnError(cmd Command, err error) error {
	return gerrors.WrapKind(gerrors.KindProcessSpawn, err, fmt.Sprintf("failed to run %s: %v", cmd.Path, err))
}
