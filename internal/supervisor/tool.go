package supervisor

import (
	"os"
	"path/filepath"
	"runtime"
)

// HomeEnv names the variable pointing at the gantry installation root.
const HomeEnv = "GANTRY_HOME"

// ToolName is the executable looked up on PATH when HomeEnv is unset.
const ToolName = "gantry"

// Tool locates the gantry executable.
type Tool struct {
	Path string // Explicit executable; overrides Home
	Home string // Installation root; empty means PATH lookup
	GOOS string
}

// ToolFromEnv returns the tool configured by the environment.
func ToolFromEnv() Tool {
	return Tool{Home: os.Getenv(HomeEnv), GOOS: runtime.GOOS}
}

// Executable returns the path of the gantry executable.
func (t Tool) Executable() string {
	if t.Path != "" {
		return t.Path
	}
	name := ToolName
	if t.GOOS == "windows" {
		name += ".bat"
	}
	if t.Home == "" {
		return name
	}
	return filepath.Join(t.Home, "bin", name)
}

// Command builds `gantry -f <descriptor> [-lib <entry>]... [args...]`.
// On Windows the batch launcher runs through cmd.exe unless Path is set.
func (t Tool) Command(descriptor string, lib []string, args ...string) Command {
	argv := []string{"-f", descriptor}
	for _, entry := range lib {
		argv = append(argv, "-lib", entry)
	}
	argv = append(argv, args...)

	if t.GOOS == "windows" && t.Path == "" {
		return Command{Path: "cmd.exe", Args: append([]string{"/c", t.Executable()}, argv...)}
	}
	return Command{Path: t.Executable(), Args: argv}
}
