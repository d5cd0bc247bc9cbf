package tasks

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	shexpand "mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/target"
)

var defaultOpenHandler = interp.DefaultOpenHandler()

// openHandler maps /dev/null to the platform's null device so snippets
// behave the same on Windows.
func openHandler(ctx context.Context, path string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	if path == "/dev/null" {
		path = os.DevNull
	}
	return defaultOpenHandler(ctx, path, flag, perm)
}

// Shell runs a POSIX shell snippet with an embedded interpreter. Both output
// streams go to the transcript under the "sh" label.
type Shell struct {
	Command string
	Dir     string // Working directory; relative to the project basedir
}

func (s *Shell) Name() string { return "sh" }

func (s *Shell) Run(ctx context.Context, exec *target.Execution) error {
	command := expand(exec, s.Command)
	file, err := syntax.NewParser().Parse(strings.NewReader(command), exec.Target)
	if err != nil {
		return gerrors.TaskError(exec.Target, s.Name(), fmt.Sprintf("failed to parse command: %v", err))
	}

	dir := exec.BaseDir
	if s.Dir != "" {
		dir = resolvePath(exec.BaseDir, expand(exec, s.Dir))
	}

	out := exec.Log.TaskWriter(s.Name())
	defer out.Flush()

	env := os.Environ()
	for name, value := range exec.Properties {
		if isEnvName(name) {
			env = append(env, name+"="+value)
		}
	}

	sh, err := interp.New(
		interp.Dir(dir),
		interp.Env(shexpand.ListEnviron(env...)),
		interp.OpenHandler(openHandler),
		interp.StdIO(nil, out, out),
		interp.Params("-e"),
	)
	if err != nil {
		return gerrors.TaskError(exec.Target, s.Name(), err.Error())
	}

	zerolog.Ctx(ctx).Debug().Str("target", exec.Target).Str("dir", dir).Msg(command)

	err = sh.Run(ctx, file)
	if err == nil {
		return nil
	}
	if status, ok := interp.IsExitStatus(err); ok {
		return gerrors.TaskError(exec.Target, s.Name(), fmt.Sprintf("command exited with status %d", status))
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return gerrors.TaskError(exec.Target, s.Name(), err.Error())
}

// isEnvName reports whether a property name can be exported to the shell.
func isEnvName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
