package script

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"go.starlark.net/starlark"

	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/target"
)

// callableBody runs a Starlark function as a target body.
type callableBody struct {
	loader *loader
	fn     starlark.Callable
}

// Run calls the function on a fresh thread. A fail() inside the script is
// returned as the build failure it raised; other script errors become build
// failures carrying the Starlark backtrace.
func (b *callableBody) Run(ctx context.Context, exec *target.Execution) error {
	thread := b.loader.newThread(exec.Target)
	thread.SetLocal(executionKey, exec)

	stop := cancelOnDone(ctx, thread)
	_, err := starlark.Call(thread, b.fn, nil, nil)
	stop()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if failure, ok := thread.Local(failureKey).(*gerrors.GantryError); ok {
		return failure
	}

	zerolog.Ctx(ctx).Debug().Str("target", exec.Target).Str("error", eris.ToString(err, false)).Msg("script body failed")
	if evalError, ok := err.(*starlark.EvalError); ok {
		return gerrors.WrapKind(gerrors.KindBuild, err, evalError.Backtrace())
	}
	return gerrors.WrapKind(gerrors.KindBuild, err, err.Error())
}

// cancelOnDone interrupts thread once ctx is done. The returned func must be
// called when the thread has finished.
func cancelOnDone(ctx context.Context, thread *starlark.Thread) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()
	return func() { close(done) }
}
