package script

import (
	"github.com/rotisserie/eris"
	"go.starlark.net/starlark"

	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/target"
)

// Thread-local keys set while a target body runs.
const (
	executionKey = "gantry.execution"
	failureKey   = "gantry.failure"
)

type starlarkIterable interface {
	Len() int
	Iterate() starlark.Iterator
}

func starlarkIterable2stringSlice(input starlarkIterable, field string) ([]string, error) {
	if input == nil {
		return nil, nil
	}
	if value, ok := input.(*starlark.List); ok && value == nil {
		return nil, nil
	}

	result := make([]string, 0, input.Len())
	iter := input.Iterate()
	defer iter.Done()

	var item starlark.Value
	for iter.Next(&item) {
		switch value := item.(type) {
		case starlark.String:
			result = append(result, value.GoString())
		default:
			return nil, eris.Errorf("expected all items in %s to be strings but found %s", field, item.Type())
		}
	}
	return result, nil
}

// getExecution returns the execution of the running target, or an error when
// called outside a target body.
func getExecution(thread *starlark.Thread, fn *starlark.Builtin) (*target.Execution, error) {
	exec, ok := thread.Local(executionKey).(*target.Execution)
	if !ok || exec == nil {
		return nil, eris.Errorf("%s: can only be called while a target runs", fn.Name())
	}
	return exec, nil
}

// * Builtin functions

func defineTarget(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, desc string
	var body starlark.Callable
	var deps *starlark.List

	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "body", &body, "deps?", &deps, "desc?", &desc)
	if err != nil {
		return nil, err
	}

	depNames, err := starlarkIterable2stringSlice(deps, "deps")
	if err != nil {
		return nil, err
	}

	l := getLoader(thread)
	err = l.project.Define(&target.Target{
		Name:        name,
		Description: desc,
		DependsOn:   depNames,
		Body:        &callableBody{loader: l, fn: body},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "%s", fn.Name())
	}
	return starlark.None, nil
}

func setDefaultTarget(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, eris.Errorf("%s: name must not be empty", fn.Name())
	}

	getLoader(thread).project.SetDefault(name)
	return starlark.None, nil
}

func appendResult(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value string
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &value); err != nil {
		return nil, err
	}

	exec, err := getExecution(thread, fn)
	if err != nil {
		return nil, err
	}
	exec.Result.Append(value)
	return starlark.None, nil
}

func setResult(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value string
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &value); err != nil {
		return nil, err
	}

	exec, err := getExecution(thread, fn)
	if err != nil {
		return nil, err
	}
	exec.Result.Set(value)
	return starlark.None, nil
}

func echo(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var message string
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &message); err != nil {
		return nil, err
	}

	exec, err := getExecution(thread, fn)
	if err != nil {
		return nil, err
	}
	exec.Log.TaskLine("echo", message)
	return starlark.None, nil
}

func fail(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var message string
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &message); err != nil {
		return nil, err
	}

	failure := gerrors.Build(message)
	thread.SetLocal(failureKey, failure)
	return nil, failure
}

func targetName(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}

	exec, err := getExecution(thread, fn)
	if err != nil {
		return nil, err
	}
	return starlark.String(exec.Target), nil
}
