package tasks

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/AndreyAkinshin/gantry/internal/config"
	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/runner"
	"github.com/AndreyAkinshin/gantry/internal/script"
	"github.com/AndreyAkinshin/gantry/internal/target"
)

// Gant runs targets of a Gantfile as a nested build. The nested build writes
// into the result of the execution that invoked it.
type Gant struct {
	File        string              // Gantfile path; relative to Dir
	Dir         string              // Base directory of the nested build; relative to the project basedir
	Targets     []string            // Requested targets; empty runs the Gantfile's default target
	Definitions []script.Definition // Exposed to the Gantfile as DEFINITIONS
}

func gantFromConfig(g *config.GantTask) *Gant {
	defs := make([]script.Definition, 0, len(g.Definitions))
	for _, d := range g.Definitions {
		defs = append(defs, script.Definition{Name: d.Name, Value: d.Value})
	}
	return &Gant{
		File:        g.File,
		Dir:         g.Dir,
		Targets:     g.Names(),
		Definitions: defs,
	}
}

func (g *Gant) Name() string { return "gant" }

func (g *Gant) Run(ctx context.Context, exec *target.Execution) error {
	dir := exec.BaseDir
	if g.Dir != "" {
		dir = resolvePath(exec.BaseDir, expand(exec, g.Dir))
	}
	file := g.File
	if file == "" {
		file = config.DefaultGantfile
	}
	path := resolvePath(dir, expand(exec, file))

	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return gerrors.ResourceNotFound("Gantfile does not exist.")
	}

	names := make([]string, len(g.Targets))
	for i, name := range g.Targets {
		names[i] = expand(exec, name)
	}
	opts := script.Options{
		BaseDir:     dir,
		LibPath:     exec.LibPath,
		Definitions: g.expandDefinitions(exec),
		Targets:     names,
	}

	zerolog.Ctx(ctx).Debug().
		Str("target", exec.Target).
		Str("gantfile", path).
		Strs("targets", names).
		Msg("starting nested build")

	p, err := script.Load(ctx, path, opts)
	if err != nil {
		return err
	}

	nested := runner.New(p, runner.Options{
		Log:         exec.Log,
		LibPath:     exec.LibPath,
		Definitions: opts.Properties(),
	})
	return nested.RunInto(ctx, exec.Result, names...)
}

func (g *Gant) expandDefinitions(exec *target.Execution) []script.Definition {
	defs := make([]script.Definition, len(g.Definitions))
	for i, d := range g.Definitions {
		defs[i] = script.Definition{Name: expand(exec, d.Name)}
		if d.Value != nil {
			v := expand(exec, *d.Value)
			defs[i].Value = &v
		}
	}
	return defs
}

func resolvePath(base, path string) string {
	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
