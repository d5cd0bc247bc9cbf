package tasks

import (
	"context"
	"strings"

	"github.com/AndreyAkinshin/gantry/internal/target"
)

// Echo prints a message to the build transcript, one labelled line per line
// of the message.
type Echo struct {
	Message string
}

func (e *Echo) Name() string { return "echo" }

func (e *Echo) Run(_ context.Context, exec *target.Execution) error {
	for _, line := range strings.Split(expand(exec, e.Message), "\n") {
		exec.Log.TaskLine(e.Name(), line)
	}
	return nil
}
