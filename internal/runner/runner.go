// Package runner executes project targets in dependency order.
package runner

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/output"
	"github.com/AndreyAkinshin/gantry/internal/project"
	"github.com/AndreyAkinshin/gantry/internal/target"
	"github.com/AndreyAkinshin/gantry/internal/topsort"
)

// Runner executes targets of a single project.
// Dependencies are resolved when a target is requested, so targets may refer
// to names defined after them.
type Runner struct {
	project *project.Project
	opts    Options
}

// Options configures execution behavior.
type Options struct {
	Log          *output.Writer    // Build transcript; nil discards task output
	TraceTargets bool              // Print a "<name>:" header before each target
	LibPath      []string          // Library search path handed to bodies
	Definitions  map[string]string // Properties overriding the project's own

	// LookupEnv resolves env.NAME target conditions; nil uses os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// KeepGoing continues with the next requested name after a failure and
	// reports all failures together.
	KeepGoing bool
}

// New creates a new Runner.
func New(p *project.Project, opts Options) *Runner {
	if opts.Log == nil {
		opts.Log = output.Discard()
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}
	return &Runner{project: p, opts: opts}
}

// Project returns the project the runner executes.
func (r *Runner) Project() *project.Project {
	return r.project
}

// Run executes the named targets in order with a fresh result and returns it.
// With no names the project's default target runs.
func (r *Runner) Run(ctx context.Context, names ...string) (*target.Result, error) {
	res := target.NewResult()
	err := r.RunInto(ctx, res, names...)
	return res, err
}

// RunDefault executes the project's default target with a fresh result.
func (r *Runner) RunDefault(ctx context.Context) (*target.Result, error) {
	return r.Run(ctx)
}

// RunInto executes the named targets in order, writing into res.
// Each name is run to completion, dependencies first, before the next starts.
func (r *Runner) RunInto(ctx context.Context, res *target.Result, names ...string) error {
	if len(names) == 0 {
		name, err := r.project.DefaultTarget()
		if err != nil {
			return err
		}
		names = []string{name}
	}

	log := zerolog.Ctx(ctx).With().
		Str("run", uuid.NewString()).
		Str("project", r.project.Name).
		Logger()
	ctx = log.WithContext(ctx)
	props := r.project.MergeProperties(r.opts.Definitions)

	var errs []error
	for _, name := range names {
		if err := r.runOne(ctx, res, props, name); err != nil {
			errs = append(errs, err)
			if !r.opts.KeepGoing {
				return err
			}
		}
	}
	return combineErrors(errs)
}

// Plan returns the targets that executing name would run, in order.
func (r *Runner) Plan(name string) ([]string, error) {
	if name == "" {
		return nil, gerrors.Config("target name must not be empty")
	}
	order, err := topsort.Sort(r.project.Registry.Graph(), []string{name})
	if err != nil {
		return nil, r.planError(err)
	}
	return order, nil
}

func (r *Runner) runOne(ctx context.Context, res *target.Result, props map[string]string, name string) error {
	log := zerolog.Ctx(ctx)

	order, err := r.Plan(name)
	if err != nil {
		log.Debug().Str("target", name).Err(err).Msg("planning failed")
		return err
	}
	log.Debug().Str("target", name).Strs("plan", order).Msg("planned")

	for _, step := range order {
		// Early exit if context is canceled before starting the next target
		if ctx.Err() != nil {
			return ctx.Err()
		}

		t, _ := r.project.Registry.Get(step)
		if r.opts.TraceTargets {
			r.opts.Log.TargetStarted(step)
		}
		if t.Body == nil {
			continue
		}
		if !t.Enabled(props, r.opts.LookupEnv) {
			log.Debug().Str("target", step).Str("if", t.If).Str("unless", t.Unless).Msg("condition not met, body skipped")
			continue
		}

		started := time.Now()
		err := t.Body.Run(ctx, r.execution(res, props, step))
		log.Debug().
			Str("target", step).
			Dur("elapsed", time.Since(started)).
			Bool("ok", err == nil).
			Msg("target finished")
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) execution(res *target.Result, props map[string]string, name string) *target.Execution {
	return &target.Execution{
		Project:    r.project.Name,
		Target:     name,
		BaseDir:    r.project.BaseDir,
		Result:     res,
		Log:        r.opts.Log,
		LibPath:    r.opts.LibPath,
		Properties: props,
	}
}

// planError converts graph errors into the messages users see.
func (r *Runner) planError(err error) error {
	var missing *topsort.MissingError
	var cycle *topsort.CycleError
	switch {
	case errors.As(err, &missing):
		if missing.From == "" {
			return gerrors.TargetNotFound(missing.Node, r.project.Name)
		}
		return gerrors.DependencyNotFound(missing.Node, r.project.Name, missing.From)
	case errors.As(err, &cycle):
		return gerrors.CyclicDependency(err)
	}
	return err
}

func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}
