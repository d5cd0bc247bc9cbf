package tasks

import (
	"context"

	"github.com/AndreyAkinshin/gantry/internal/config"
	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/target"
)

// Result writes a value to the execution result.
type Result struct {
	Value string
	Mode  string // config.ResultModeAppend (default) or config.ResultModeSet
}

func (r *Result) Name() string { return "result" }

func (r *Result) Run(_ context.Context, exec *target.Execution) error {
	value := expand(exec, r.Value)
	switch r.Mode {
	case "", config.ResultModeAppend:
		exec.Result.Append(value)
	case config.ResultModeSet:
		exec.Result.Set(value)
	default:
		return gerrors.TaskError(exec.Target, r.Name(), "unknown mode "+r.Mode)
	}
	return nil
}
