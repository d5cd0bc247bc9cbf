// Package tasks provides the building blocks of descriptor target bodies.
package tasks

import (
	"context"

	"github.com/AndreyAkinshin/gantry/internal/config"
	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/target"
)

// Task is a single step of a target body. Name is used as the transcript
// label and in error messages.
type Task interface {
	target.Body
	Name() string
}

// Sequence runs tasks in order and stops at the first failure.
type Sequence []Task

// Run executes each task with the same execution.
func (s Sequence) Run(ctx context.Context, exec *target.Execution) error {
	for _, task := range s {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := task.Run(ctx, exec); err != nil {
			return err
		}
	}
	return nil
}

// FromConfig converts one descriptor task into a Task.
func FromConfig(tc config.TaskConfig) (Task, error) {
	switch tc.Kind() {
	case "echo":
		return &Echo{Message: tc.Echo.Message}, nil
	case "result":
		return &Result{Value: tc.Result.Value, Mode: tc.Result.Mode}, nil
	case "gant":
		return gantFromConfig(tc.Gant), nil
	case "sh":
		return &Shell{Command: tc.Sh.Command, Dir: tc.Sh.Dir}, nil
	case "fail":
		return &Fail{Message: tc.Fail.Message}, nil
	}
	return nil, gerrors.Config("task must define exactly one of echo, result, gant, sh, fail")
}

// SequenceFromConfig converts all tasks of a descriptor target.
// A target without tasks yields a nil Body.
func SequenceFromConfig(tcs []config.TaskConfig) (target.Body, error) {
	if len(tcs) == 0 {
		return nil, nil
	}
	seq := make(Sequence, 0, len(tcs))
	for _, tc := range tcs {
		task, err := FromConfig(tc)
		if err != nil {
			return nil, err
		}
		seq = append(seq, task)
	}
	return seq, nil
}

// expand interpolates ${name} references from the execution's variables.
func expand(exec *target.Execution, s string) string {
	return target.Interpolate(s, exec.Vars())
}
