package cli

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/gantry/internal/supervisor"
)

var titleCase = cases.Title(language.English)

// Width constants for help text alignment.
const (
	widthCommand = 18
	widthFlag    = 22
)

func (a *app) printUsage(cmd *cobra.Command) {
	w := a.out

	if cmd.HasParent() {
		w.HelpTitle("gantry " + cmd.Name() + " - " + cmd.Short)
		w.HelpSection(titleCase.String("usage") + ":")
		w.HelpUsage(cmd.UseLine())
		return
	}

	w.HelpTitle("gantry - dependency-ordered build targets")

	w.HelpSection(titleCase.String("usage") + ":")
	w.HelpUsage("gantry [flags] [<target>...]   Run targets (default target when none given)")
	w.HelpUsage("gantry <command> [args]        Run a utility command")

	w.HelpSection(titleCase.String("commands") + ":")
	for _, sub := range cmd.Commands() {
		if sub.Hidden || sub.Name() == "help" {
			continue
		}
		w.HelpCommand(sub.Use, sub.Short, widthCommand)
	}

	w.HelpSection(titleCase.String("flags") + ":")
	w.HelpFlag("-f, --buildfile <file>", "Descriptor to load (also -buildfile, -file)", widthFlag)
	w.HelpFlag("--lib <dir>", "Library directory for load() (also -lib, repeatable)", widthFlag)
	w.HelpFlag("-D<name>[=<value>]", "Define a property (repeatable)", widthFlag)
	w.HelpFlag("-k, --keep-going", "Run remaining targets after a failure", widthFlag)
	w.HelpFlag("-q, --quiet", "Omit target headers", widthFlag)
	w.HelpFlag("-v, --verbose", "Print diagnostic logging", widthFlag)
	w.HelpFlag("-h, --help", "Show this help", widthFlag)
	w.HelpFlag("--version", "Show version", widthFlag)

	w.HelpSection(titleCase.String("environment") + ":")
	w.HelpEnvVar(supervisor.HomeEnv, "Installation root used by out-of-process checks", 12)

	w.HelpSection(titleCase.String("examples") + ":")
	w.HelpExample("gantry -f build.json -lib lib", "Run the default target")
	w.HelpExample("gantry -Dflob=adob compile test", "Run two targets with a property")
	w.HelpExample("gantry check test/fixtures/gantTest.suite.yaml", "Run an acceptance suite")
	w.Println("")
}
