package target

import (
	"sort"

	"github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/topsort"
)

// Registry manages a collection of uniquely named targets.
// Dependencies are resolved when targets run, not when they are added.
type Registry struct {
	targets map[string]*Target
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		targets: make(map[string]*Target),
	}
}

// Add registers a target. Returns a configuration error if the name is
// empty or already taken.
func (r *Registry) Add(t *Target) error {
	if t == nil || t.Name == "" {
		return errors.Config("target name must not be empty")
	}
	if _, exists := r.targets[t.Name]; exists {
		return errors.Configf("duplicate target %q", t.Name)
	}
	r.targets[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// Get retrieves a target by name.
func (r *Registry) Get(name string) (*Target, bool) {
	t, ok := r.targets[name]
	return t, ok
}

// All returns all targets in the order they were added.
func (r *Registry) All() []*Target {
	targets := make([]*Target, 0, len(r.order))
	for _, name := range r.order {
		targets = append(targets, r.targets[name])
	}
	return targets
}

// Names returns all target names sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Graph creates a topsort.Graph from the registry.
func (r *Registry) Graph() topsort.Graph {
	g := make(topsort.Graph, len(r.targets))
	for name, t := range r.targets {
		g[name] = t.DependsOn
	}
	return g
}
