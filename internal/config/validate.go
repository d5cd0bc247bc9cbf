package config

import (
	"fmt"
	"sort"
)

// ValidationError represents a descriptor validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a descriptor for errors and returns warnings for non-fatal issues.
// Dependencies and the default target are resolved when targets run, so names
// that are not defined yield warnings rather than errors.
func Validate(d *Descriptor) (warnings []string, err error) {
	if err := validateProject(d); err != nil {
		return nil, err
	}

	if err := validateTargets(d); err != nil {
		return nil, err
	}

	return undefinedReferences(d), nil
}

func validateProject(d *Descriptor) error {
	if d.Project.Name == "" {
		return &ValidationError{Field: "project.name", Message: "is required"}
	}
	return nil
}

func validateTargets(d *Descriptor) error {
	seen := make(map[string]bool, len(d.Targets))
	for i, target := range d.Targets {
		if target.Name == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("targets[%d].name", i),
				Message: "is required",
			}
		}
		if seen[target.Name] {
			return &ValidationError{
				Field:   fmt.Sprintf("targets[%d].name", i),
				Message: fmt.Sprintf("duplicate target %q", target.Name),
			}
		}
		seen[target.Name] = true

		for j, task := range target.Tasks {
			if err := validateTask(target.Name, j, task); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateTask(targetName string, index int, task TaskConfig) error {
	field := fmt.Sprintf("targets.%s.tasks[%d]", targetName, index)

	if task.Kind() == "" {
		return &ValidationError{Field: field, Message: "must define exactly one task"}
	}

	switch {
	case task.Result != nil:
		switch task.Result.Mode {
		case "", ResultModeAppend, ResultModeSet:
		default:
			return &ValidationError{
				Field:   field + ".result.mode",
				Message: `must be "append" or "set"`,
			}
		}
	case task.Gant != nil:
		for k, def := range task.Gant.Definitions {
			if def.Name == "" {
				return &ValidationError{
					Field:   fmt.Sprintf("%s.gant.definitions[%d].name", field, k),
					Message: "is required",
				}
			}
		}
	case task.Sh != nil:
		if task.Sh.Command == "" {
			return &ValidationError{Field: field + ".sh.command", Message: "is required"}
		}
	}
	return nil
}

// undefinedReferences reports dependencies and a default target that no target defines.
func undefinedReferences(d *Descriptor) []string {
	defined := make(map[string]bool, len(d.Targets))
	for _, t := range d.Targets {
		defined[t.Name] = true
	}

	var warnings []string
	if d.Project.Default != "" && !defined[d.Project.Default] {
		warnings = append(warnings, fmt.Sprintf("default target %q is not defined", d.Project.Default))
	}
	for _, t := range d.Targets {
		for _, dep := range t.Depends {
			if !defined[dep] {
				warnings = append(warnings, fmt.Sprintf("target %q depends on undefined target %q", t.Name, dep))
			}
		}
	}
	sort.Strings(warnings)
	return warnings
}
