package cli

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/AndreyAkinshin/gantry/internal/descriptor"
	"github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/project"
	"github.com/AndreyAkinshin/gantry/internal/runner"
)

// buildfile returns the descriptor path given on the command line, or the
// nearest build.json above the working directory.
func (a *app) buildfile() (string, error) {
	if a.opts.Buildfile != "" {
		return a.opts.Buildfile, nil
	}
	path, err := project.FindBuildfile()
	if err != nil {
		return "", errors.ResourceNotFound(err.Error())
	}
	return path, nil
}

// loadProject resolves and loads the descriptor, printing its warnings.
func (a *app) loadProject() (*project.Project, error) {
	path, err := a.buildfile()
	if err != nil {
		return nil, err
	}
	p, err := descriptor.Load(path)
	if err != nil {
		return nil, err
	}
	for _, w := range p.Warnings {
		a.out.Warning("%s", w)
	}
	return p, nil
}

// runBuild executes the requested targets and prints the transcript:
// the banner, a header per target, task output, then the success trailer
// on stdout or the failure block on stderr.
func (a *app) runBuild(ctx context.Context, names []string) int {
	started := time.Now()
	log := zerolog.Ctx(ctx)

	defs, err := a.definitions()
	if err != nil {
		a.out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	p, err := a.loadProject()
	if err != nil {
		a.out.BuildFailed(err, time.Since(started))
		return errors.GetExitCode(err)
	}
	a.out.Banner(p.Buildfile)

	r := runner.New(p, runner.Options{
		Log:          a.out,
		TraceTargets: true,
		LibPath:      a.opts.Lib,
		Definitions:  defs,
		KeepGoing:    a.opts.KeepGoing,
	})
	_, err = r.Run(ctx, names...)
	elapsed := time.Since(started)
	if err != nil {
		log.Debug().Err(err).Msg("build failed")
		a.out.BuildFailed(err, elapsed)
		return errors.GetExitCode(err)
	}

	a.out.BuildSuccessful(elapsed)
	return errors.ExitSuccess
}
