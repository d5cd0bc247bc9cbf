// Package target provides the Target model and registry for build targets.
package target

import (
	"context"
	"strings"
	"sync"

	"github.com/AndreyAkinshin/gantry/internal/output"
)

// Target is a named unit of work with ordered dependencies.
type Target struct {
	Name        string
	Description string
	DependsOn   []string // Executed in this order before Body
	If          string   // Body runs only when this property is set
	Unless      string   // Body is skipped when this property is set
	Body        Body
}

// envPrefix marks a condition that names an environment variable.
const envPrefix = "env."

// Enabled reports whether the body should run given the execution's
// properties. Conditions of the form env.NAME are looked up with lookupEnv.
func (t *Target) Enabled(props map[string]string, lookupEnv func(string) (string, bool)) bool {
	isSet := func(name string) bool {
		if strings.HasPrefix(name, envPrefix) {
			if lookupEnv == nil {
				return false
			}
			_, ok := lookupEnv(strings.TrimPrefix(name, envPrefix))
			return ok
		}
		_, ok := props[name]
		return ok
	}
	if t.If != "" && !isSet(t.If) {
		return false
	}
	if t.Unless != "" && isSet(t.Unless) {
		return false
	}
	return true
}

// Body is the work a target performs once its dependencies have run.
type Body interface {
	Run(ctx context.Context, exec *Execution) error
}

// BodyFunc adapts an ordinary function to a Body.
type BodyFunc func(ctx context.Context, exec *Execution) error

// Run calls f(ctx, exec).
func (f BodyFunc) Run(ctx context.Context, exec *Execution) error {
	return f(ctx, exec)
}

// Execution is what a Body sees while it runs.
type Execution struct {
	Project    string            // Project name
	Target     string            // Name of the target being run
	BaseDir    string            // Directory relative paths resolve against
	Result     *Result           // Result sink of this execution
	Log        *output.Writer    // Build transcript
	LibPath    []string          // Library search path for script modules
	Properties map[string]string // Project properties and command-line definitions
}

// Property returns the named property and whether it was set.
func (e *Execution) Property(name string) (string, bool) {
	v, ok := e.Properties[name]
	return v, ok
}

// Vars returns the variables available for interpolation in task attributes.
// Built-ins are overridden by properties of the same name.
func (e *Execution) Vars() map[string]string {
	vars := map[string]string{
		"basedir":      e.BaseDir,
		"project.name": e.Project,
		"target":       e.Target,
	}
	for k, v := range e.Properties {
		vars[k] = v
	}
	return vars
}

// Result accumulates the value an execution produces.
// The zero value is an empty result ready to use.
type Result struct {
	mu  sync.Mutex
	buf strings.Builder
}

// NewResult returns an empty Result.
func NewResult() *Result {
	return &Result{}
}

// Append adds s to the end of the result.
func (r *Result) Append(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf.WriteString(s)
}

// Set replaces the result with s.
func (r *Result) Set(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf.Reset()
	r.buf.WriteString(s)
}

// String returns the accumulated value.
func (r *Result) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.String()
}
