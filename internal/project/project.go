package project

import (
	"sort"

	"github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/target"
)

// Project is a named set of targets with a default target and properties.
type Project struct {
	Name       string
	Default    string            // Default target name; may be empty
	BaseDir    string            // Absolute directory relative paths resolve against
	Buildfile  string            // Descriptor path as given by the user
	Properties map[string]string // Descriptor properties
	Registry   *target.Registry
	Warnings   []string
}

// New creates an empty project.
func New(name, baseDir string) *Project {
	return &Project{
		Name:       name,
		BaseDir:    baseDir,
		Properties: make(map[string]string),
		Registry:   target.NewRegistry(),
	}
}

// Define adds a target to the project.
func (p *Project) Define(t *target.Target) error {
	return p.Registry.Add(t)
}

// SetDefault sets the default target name. The name is resolved at run time.
func (p *Project) SetDefault(name string) {
	p.Default = name
}

// DefaultTarget returns the default target name.
func (p *Project) DefaultTarget() (string, error) {
	if p.Default == "" {
		return "", errors.Configf("project %q has no default target", p.Name)
	}
	return p.Default, nil
}

// MergeProperties returns the project properties overlaid with defs.
// Neither input map is modified.
func (p *Project) MergeProperties(defs map[string]string) map[string]string {
	merged := make(map[string]string, len(p.Properties)+len(defs))
	for k, v := range p.Properties {
		merged[k] = v
	}
	for k, v := range defs {
		merged[k] = v
	}
	return merged
}

// Describe returns name/description pairs for all targets, sorted by name.
// Targets whose name starts with '-' are internal and omitted, as they cannot
// be requested from the command line.
func (p *Project) Describe() [][2]string {
	var rows [][2]string
	for _, t := range p.Registry.All() {
		if len(t.Name) > 0 && t.Name[0] == '-' {
			continue
		}
		rows = append(rows, [2]string{t.Name, t.Description})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return rows
}
