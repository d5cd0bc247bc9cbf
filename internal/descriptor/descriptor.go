// Package descriptor turns a build descriptor into an executable project.
package descriptor

import (
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/gantry/internal/config"
	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/project"
	"github.com/AndreyAkinshin/gantry/internal/target"
	"github.com/AndreyAkinshin/gantry/internal/tasks"
)

// Load reads, validates and builds the descriptor at path.
// Warnings are returned alongside the project and also recorded in
// Project.Warnings.
func Load(path string) (*project.Project, error) {
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return nil, gerrors.ResourceNotFound("Buildfile: " + path + " does not exist!")
	}

	d, warnings, err := config.LoadAndValidate(path)
	if err != nil {
		return nil, gerrors.WrapKind(gerrors.KindConfig, err, err.Error())
	}

	p, err := Build(path, d)
	if err != nil {
		return nil, err
	}
	p.Warnings = append(p.Warnings, warnings...)
	return p, nil
}

// Build creates a project from a parsed descriptor. The project basedir is
// the descriptor's basedir resolved against the directory containing path.
func Build(path string, d *config.Descriptor) (*project.Project, error) {
	baseDir, err := resolveBaseDir(path, d.Project.BaseDir)
	if err != nil {
		return nil, gerrors.WrapKind(gerrors.KindConfig, err, err.Error())
	}

	p := project.New(d.Project.Name, baseDir)
	p.Buildfile = path
	p.SetDefault(d.Project.Default)
	for k, v := range d.Properties {
		p.Properties[k] = v
	}

	for _, tc := range d.Targets {
		body, err := tasks.SequenceFromConfig(tc.Tasks)
		if err != nil {
			return nil, gerrors.Configf("target %q: %v", tc.Name, err)
		}
		err = p.Define(&target.Target{
			Name:        tc.Name,
			Description: tc.Description,
			DependsOn:   tc.Depends,
			If:          tc.If,
			Unless:      tc.Unless,
			Body:        body,
		})
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func resolveBaseDir(path, baseDir string) (string, error) {
	if baseDir == "" {
		baseDir = config.DefaultBaseDir
	}
	baseDir = filepath.FromSlash(baseDir)
	if !filepath.IsAbs(baseDir) {
		baseDir = filepath.Join(filepath.Dir(path), baseDir)
	}
	return filepath.Abs(baseDir)
}
