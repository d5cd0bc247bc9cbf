package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/schema"
	"github.com/AndreyAkinshin/gantry/internal/target"
)

// LoadSuite reads a YAML suite, validates it against the suite schema and
// resolves every check's defaults and paths.
//
// Relative buildfile and lib paths are resolved against the suite's
// directory. Expected values may reference ${buildfile} (the resolved
// descriptor path), ${basedir} (its absolute directory) and ${sep} (the
// path separator).
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gerrors.ResourceNotFound(fmt.Sprintf("suite %s does not exist", path))
		}
		return nil, gerrors.Wrap(err, fmt.Sprintf("failed to read suite %s: %v", path, err))
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, gerrors.WrapKind(gerrors.KindConfig, err, fmt.Sprintf("invalid suite %s: %v", path, err))
	}
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, gerrors.WrapKind(gerrors.KindConfig, err, fmt.Sprintf("invalid suite %s: %v", path, err))
	}
	if err := schema.ValidateSuite(asJSON); err != nil {
		return nil, gerrors.WrapKind(gerrors.KindConfig, err, fmt.Sprintf("%s: %v", path, err))
	}

	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, gerrors.WrapKind(gerrors.KindConfig, err, fmt.Sprintf("invalid suite %s: %v", path, err))
	}
	s.Path = path

	if err := s.resolve(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Suite) resolve(dir string) error {
	seen := make(map[string]bool, len(s.Checks))
	for i := range s.Checks {
		c := &s.Checks[i]
		if seen[c.Name] {
			return gerrors.Configf("%s: duplicate check %q", s.Path, c.Name)
		}
		seen[c.Name] = true

		if c.Mode == "" {
			c.Mode = ModeInProcess
		}
		if c.Buildfile == "" {
			c.Buildfile = s.Buildfile
		}
		if c.Buildfile == "" {
			return gerrors.Configf("%s: check %q has no buildfile", s.Path, c.Name)
		}
		if c.Lib == nil {
			c.Lib = s.Lib
		}
		if c.Timeout != "" {
			if _, err := time.ParseDuration(c.Timeout); err != nil {
				return gerrors.Configf("%s: check %q: invalid timeout %q", s.Path, c.Name, c.Timeout)
			}
		}

		c.Buildfile = resolvePath(dir, c.Buildfile)
		lib := make([]string, len(c.Lib))
		for j, entry := range c.Lib {
			lib[j] = resolvePath(dir, entry)
		}
		c.Lib = lib

		baseDir, err := filepath.Abs(filepath.Dir(c.Buildfile))
		if err != nil {
			return gerrors.Wrap(err, err.Error())
		}
		vars := map[string]string{
			"buildfile": c.Buildfile,
			"basedir":   baseDir,
			"sep":       string(filepath.Separator),
		}
		c.Result = interpolate(c.Result, vars)
		c.Error = interpolate(c.Error, vars)
		c.Stdout = interpolate(c.Stdout, vars)
	}
	return nil
}

func interpolate(s *string, vars map[string]string) *string {
	if s == nil {
		return nil
	}
	v := target.Interpolate(*s, vars)
	return &v
}

func resolvePath(dir, path string) string {
	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
