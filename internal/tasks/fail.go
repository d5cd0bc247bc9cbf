package tasks

import (
	"context"

	"github.com/AndreyAkinshin/gantry/internal/config"
	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/target"
)

// Fail stops the build with a message.
type Fail struct {
	Message string
}

func (f *Fail) Name() string { return "fail" }

func (f *Fail) Run(_ context.Context, exec *target.Execution) error {
	msg := f.Message
	if msg == "" {
		msg = config.DefaultFailMessage
	}
	return gerrors.Build(expand(exec, msg))
}
