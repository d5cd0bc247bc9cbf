//go:build mage

package main

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build the binary
var Default = Build

const versionVar = "github.com/AndreyAkinshin/gantry/internal/cli.Version"

func binary() string {
	name := "gantry"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join("bin", name)
}

// Build builds the gantry binary into bin/
func Build() error {
	version := os.Getenv("GANTRY_VERSION")
	if version == "" {
		version = "dev"
	}
	return sh.RunV("go", "build", "-ldflags", "-X "+versionVar+"="+version, "-o", binary(), "./cmd/gantry")
}

// Test runs the unit tests
func Test() error {
	return sh.RunV("go", "test", "./internal/...", "./pkg/...", "./cmd/...")
}

// Acceptance runs the acceptance suite against the built binary
func Acceptance() error {
	mg.Deps(Build)
	home, err := filepath.Abs(".")
	if err != nil {
		return err
	}
	env := map[string]string{"GANTRY_HOME": home}
	return sh.RunWithV(env, binary(), "check", filepath.Join("test", "fixtures", "gantTest.suite.yaml"))
}

// Integration runs the integration tests, which build their own binary
func Integration() error {
	return sh.RunV("go", "test", "./test/integration/...")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}
