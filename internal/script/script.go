// Package script loads Gantfiles, Starlark scripts that define targets for a
// nested build.
package script

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"go.starlark.net/starlark"

	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/project"
)

// Definition is a name passed to a Gantfile with an optional value.
type Definition struct {
	Name  string
	Value *string
}

// Options configures how a Gantfile is loaded.
type Options struct {
	BaseDir     string       // Exposed as BASEDIR; defaults to the Gantfile's directory
	LibPath     []string     // Searched by load() after the Gantfile's directory
	Definitions []Definition // Exposed as DEFINITIONS, in order
	Targets     []string     // Exposed as TARGETS
}

// Properties returns the definitions as a property map. Definitions without a
// value map to the empty string.
func (o Options) Properties() map[string]string {
	props := make(map[string]string, len(o.Definitions))
	for _, def := range o.Definitions {
		if def.Value != nil {
			props[def.Name] = *def.Value
		} else {
			props[def.Name] = ""
		}
	}
	return props
}

// loader holds the state shared by a Gantfile and the modules it loads.
type loader struct {
	ctx     context.Context
	dir     string
	libPath []string
	globals starlark.StringDict
	modules map[string]*moduleEntry
	project *project.Project
}

type moduleEntry struct {
	globals starlark.StringDict
	err     error
}

// loaderKey is the thread-local key under which the loader is stored.
const loaderKey = "gantry.loader"

// Load executes the Gantfile at path and returns the project it defines.
// The project is named after the file without its extension.
func Load(ctx context.Context, path string, opts Options) (*project.Project, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, gerrors.WrapKind(gerrors.KindBuild, err, err.Error())
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p := project.New(name, baseDir)
	p.Buildfile = path

	l := &loader{
		ctx:     ctx,
		dir:     filepath.Dir(path),
		libPath: opts.LibPath,
		modules: make(map[string]*moduleEntry),
		project: p,
	}

	l.globals, err = predeclared(opts, baseDir)
	if err != nil {
		return nil, gerrors.WrapKind(gerrors.KindBuild, err, err.Error())
	}

	zerolog.Ctx(ctx).Debug().Str("gantfile", path).Strs("lib", opts.LibPath).Msg("loading gantfile")

	if _, err := l.exec(path); err != nil {
		return nil, gerrors.WrapKind(gerrors.KindBuild, err, err.Error())
	}
	return p, nil
}

// predeclared builds the names visible to every module.
func predeclared(opts Options, baseDir string) (starlark.StringDict, error) {
	defs := starlark.NewDict(len(opts.Definitions))
	for _, def := range opts.Definitions {
		var value starlark.Value = starlark.None
		if def.Value != nil {
			value = starlark.String(*def.Value)
		}
		if err := defs.SetKey(starlark.String(def.Name), value); err != nil {
			return nil, eris.Wrapf(err, "failed to set definition %s", def.Name)
		}
	}
	defs.Freeze()

	targets := make(starlark.Tuple, len(opts.Targets))
	for i, name := range opts.Targets {
		targets[i] = starlark.String(name)
	}

	return starlark.StringDict{
		"OS":                 starlark.String(runtime.GOOS),
		"BASEDIR":            starlark.String(baseDir),
		"DEFINITIONS":        defs,
		"TARGETS":            targets,
		"target":             starlark.NewBuiltin("target", defineTarget),
		"set_default_target": starlark.NewBuiltin("set_default_target", setDefaultTarget),
		"append_result":      starlark.NewBuiltin("append_result", appendResult),
		"set_result":         starlark.NewBuiltin("set_result", setResult),
		"echo":               starlark.NewBuiltin("echo", echo),
		"fail":               starlark.NewBuiltin("fail", fail),
		"target_name":        starlark.NewBuiltin("target_name", targetName),
	}, nil
}

// newThread creates a thread whose load() statements resolve through l.
func (l *loader) newThread(name string) *starlark.Thread {
	thread := &starlark.Thread{
		Name: name,
		Print: func(thread *starlark.Thread, msg string) {
			zerolog.Ctx(l.ctx).Info().Str("thread", thread.Name).Msg(msg)
		},
		Load: l.load,
	}
	thread.SetLocal(loaderKey, l)
	return thread
}

// exec runs one module file and returns its globals.
func (l *loader) exec(path string) (starlark.StringDict, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read %s", path)
	}

	thread := l.newThread(filepath.Base(path))
	stop := cancelOnDone(l.ctx, thread)
	globals, err := starlark.ExecFile(thread, l.display(path), src, l.globals)
	stop()
	if err != nil {
		if evalError, ok := err.(*starlark.EvalError); ok {
			return nil, eris.New(evalError.Backtrace())
		}
		return nil, eris.Wrapf(err, "failed to execute %s", l.display(path))
	}
	return globals, nil
}

// load implements the load() statement. Modules resolve relative to the
// Gantfile first, then against each library path entry in order.
func (l *loader) load(_ *starlark.Thread, module string) (starlark.StringDict, error) {
	path, err := l.resolve(module)
	if err != nil {
		return nil, err
	}

	if entry, ok := l.modules[path]; ok {
		if entry == nil {
			return nil, eris.Errorf("cycle in load graph at %s", module)
		}
		return entry.globals, entry.err
	}

	l.modules[path] = nil
	globals, err := l.exec(path)
	l.modules[path] = &moduleEntry{globals: globals, err: err}
	return globals, err
}

func (l *loader) resolve(module string) (string, error) {
	if filepath.IsAbs(module) {
		if isFile(module) {
			return module, nil
		}
		return "", eris.Errorf("cannot load %s: file does not exist", module)
	}

	candidates := append([]string{l.dir}, l.libPath...)
	for _, dir := range candidates {
		path := filepath.Join(dir, filepath.FromSlash(module))
		if isFile(path) {
			return filepath.Abs(path)
		}
	}
	return "", eris.Errorf("cannot load %s: not found next to the Gantfile or in the library path %v", module, l.libPath)
}

// display shortens paths below the Gantfile's directory for messages.
func (l *loader) display(path string) string {
	if rel, err := filepath.Rel(l.dir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func getLoader(thread *starlark.Thread) *loader {
	return thread.Local(loaderKey).(*loader)
}
