// Package cli provides the command-line interface of gantry.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/output"
	"github.com/AndreyAkinshin/gantry/internal/project"
)

// Version is set at build time.
var Version = "dev"

// GlobalOptions holds parsed flags shared by every command.
type GlobalOptions struct {
	Buildfile string
	Lib       []string
	Defines   []string
	Verbose   bool
	Quiet     bool
	KeepGoing bool
}

// legacyFlags are long flags also accepted with a single dash.
var legacyFlags = map[string]bool{
	"lib":        true,
	"buildfile":  true,
	"file":       true,
	"verbose":    true,
	"quiet":      true,
	"keep-going": true,
	"help":       true,
	"version":    true,
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return Execute(ctx, args, os.Stdout, os.Stderr)
}

// Execute runs the CLI writing to the given streams.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{
		out:    output.NewWithWriters(stdout, stderr, false),
		stderr: stderr,
		code:   errors.ExitSuccess,
	}
	if stdout == os.Stdout && stderr == os.Stderr {
		a.out = output.New()
		a.color = output.IsTerminal()
	}

	root := a.rootCommand()
	root.SetArgs(normalizeLegacyArgs(args))
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		a.out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	return a.code
}

// app carries the state of one CLI invocation.
type app struct {
	opts   GlobalOptions
	out    *output.Writer
	stderr io.Writer
	color  bool
	code   int
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "gantry [flags] [target...]",
		Short:         "Dependency-ordered build targets with an Ant-style transcript",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a.code = a.runBuild(cmd.Context(), args)
			return nil
		},
		ValidArgsFunction: a.completeTargets,
		Version:           Version,
	}
	root.SetVersionTemplate("gantry {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.SetNormalizeFunc(normalizeFlagName)
	flags.StringVarP(&a.opts.Buildfile, "buildfile", "f", "", "descriptor to load (default: nearest "+project.BuildfileName+")")
	flags.StringArrayVar(&a.opts.Lib, "lib", nil, "library directory searched by Gantfile load() (repeatable)")
	flags.StringArrayVarP(&a.opts.Defines, "define", "D", nil, "define a property as name=value or name (repeatable)")
	flags.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "print diagnostic logging to stderr")
	flags.BoolVarP(&a.opts.Quiet, "quiet", "q", false, "omit target headers from the transcript")
	flags.BoolVarP(&a.opts.KeepGoing, "keep-going", "k", false, "run remaining requested targets after a failure")

	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		a.printUsage(cmd)
	})

	root.AddCommand(a.targetsCommand(), a.checkCommand(), a.versionCommand())
	return root
}

// setup validates global flags and configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	if a.opts.Quiet && a.opts.Verbose {
		return errors.Config("--quiet and --verbose are mutually exclusive")
	}
	a.out.SetQuiet(a.opts.Quiet)

	level := zerolog.WarnLevel
	if a.opts.Verbose {
		level = zerolog.DebugLevel
	}
	logger := newLogger(a.stderr, level, a.color)
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

// definitions parses -D values into a property map.
func (a *app) definitions() (map[string]string, error) {
	defs := make(map[string]string, len(a.opts.Defines))
	for _, d := range a.opts.Defines {
		name, value, _ := strings.Cut(d, "=")
		if name == "" {
			return nil, errors.Configf("invalid definition %q: name must not be empty", d)
		}
		defs[name] = value
	}
	return defs, nil
}

// normalizeFlagName maps Ant spellings onto gantry's flag names.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	switch name {
	case "file":
		name = "buildfile"
	case "keepgoing":
		name = "keep-going"
	}
	return pflag.NormalizedName(name)
}

// normalizeLegacyArgs rewrites single-dash long flags such as -lib to their
// double-dash form. Arguments after "--" are left alone.
func normalizeLegacyArgs(args []string) []string {
	result := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(result, args[i:]...)
		}
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") {
			name, _, _ := strings.Cut(arg[1:], "=")
			if legacyFlags[name] {
				arg = "-" + arg
			}
		}
		result = append(result, arg)
	}
	return result
}
