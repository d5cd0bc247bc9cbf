// Package project provides the project model and build descriptor discovery.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

// BuildfileName is the descriptor looked up when none is given explicitly.
const BuildfileName = "build.json"

// ErrNoBuildfile is returned when no descriptor is found.
var ErrNoBuildfile = errors.New(BuildfileName + " not found (in the current directory or any parent up to the root)")

// FindBuildfile walks up from the current working directory until it finds build.json.
func FindBuildfile() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindBuildfileFrom(cwd)
}

// FindBuildfileFrom walks up from the given directory until it finds build.json.
func FindBuildfileFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		path := filepath.Join(dir, BuildfileName)
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNoBuildfile
		}
		dir = parent
	}
}
