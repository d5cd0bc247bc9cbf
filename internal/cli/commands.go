package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/harness"
	"github.com/AndreyAkinshin/gantry/internal/supervisor"
)

func (a *app) targetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "targets",
		Aliases: []string{"projecthelp"},
		Short:   "List the targets of the descriptor",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.code = a.cmdTargets()
			return nil
		},
	}
}

func (a *app) cmdTargets() int {
	p, err := a.loadProject()
	if err != nil {
		a.out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	a.out.Banner(p.Buildfile)
	rows := p.Describe()
	width := 0
	for _, row := range rows {
		if len(row[0]) > width {
			width = len(row[0])
		}
	}

	a.out.HelpSection(titleCase.String("main") + " targets:")
	for _, row := range rows {
		a.out.HelpCommand(row[0], row[1], width)
	}
	if p.Default != "" {
		a.out.Println("Default target: %s", p.Default)
	}
	return errors.ExitSuccess
}

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <suite>",
		Short: "Run an acceptance suite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.code = a.cmdCheck(cmd, args[0])
			return nil
		},
	}
}

func (a *app) cmdCheck(cmd *cobra.Command, path string) int {
	suite, err := harness.LoadSuite(path)
	if err != nil {
		a.out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	tool, err := checkTool()
	if err != nil {
		a.out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	a.out.HelpTitle(fmt.Sprintf("Suite: %s", path))
	h := &harness.Harness{Tool: tool, Log: a.out}
	result, err := h.RunSuite(cmd.Context(), suite)

	a.out.Println("")
	a.out.SummaryPassed("Passed", fmt.Sprint(result.Passed))
	if result.Failed > 0 {
		a.out.SummaryFailed("Failed", fmt.Sprint(result.Failed))
	}
	if err != nil {
		return errors.ExitBuildFailed
	}
	return errors.ExitSuccess
}

// checkTool returns the executable out-of-process checks run. GANTRY_HOME
// wins; otherwise the running gantry checks itself.
func checkTool() (supervisor.Tool, error) {
	if os.Getenv(supervisor.HomeEnv) != "" {
		return supervisor.ToolFromEnv(), nil
	}
	exe, err := os.Executable()
	if err != nil {
		return supervisor.Tool{}, errors.Environmentf("cannot locate the gantry executable: %v", err)
	}
	return supervisor.Tool{Path: exe, GOOS: runtime.GOOS}, nil
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.out.Println("gantry %s", Version)
			return nil
		},
	}
}
