// Package mocks provides shared test doubles for gantry packages.
package mocks

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/AndreyAkinshin/gantry/internal/target"
)

// Recorder collects the order in which mock bodies run.
// Share one Recorder between several targets to observe execution order.
type Recorder struct {
	mu    sync.Mutex
	order []string
}

// Order returns a copy of the recorded target names.
func (r *Recorder) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]string, len(r.order))
	copy(result, r.order)
	return result
}

// Reset clears the recorded order.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.order = nil
	r.mu.Unlock()
}

func (r *Recorder) record(name string) {
	r.mu.Lock()
	r.order = append(r.order, name)
	r.mu.Unlock()
}

// Target builds a target.Target whose body is observable from tests.
// Use NewTarget() to create instances with a fluent builder API.
type Target struct {
	name        string
	description string
	dependsOn   []string
	ifProp      string
	unlessProp  string
	appendValue string
	recorder    *Recorder

	// RunFunc is called by the body after the result append. If nil, the body returns nil.
	RunFunc func(ctx context.Context, exec *target.Execution) error

	runCount int32
	mu       sync.Mutex
	lastExec *target.Execution
}

// NewTarget creates a new mock target with the given name.
func NewTarget(name string) *Target {
	return &Target{name: name}
}

// WithDescription sets the target description.
func (m *Target) WithDescription(desc string) *Target {
	m.description = desc
	return m
}

// WithDependsOn sets the target dependencies.
func (m *Target) WithDependsOn(deps ...string) *Target {
	m.dependsOn = deps
	return m
}

// WithConditions sets the if and unless properties of the target.
func (m *Target) WithConditions(ifProp, unlessProp string) *Target {
	m.ifProp = ifProp
	m.unlessProp = unlessProp
	return m
}

// WithAppend makes the body append value to the execution result.
func (m *Target) WithAppend(value string) *Target {
	m.appendValue = value
	return m
}

// WithRecorder makes the body record its name into r when it runs.
func (m *Target) WithRecorder(r *Recorder) *Target {
	m.recorder = r
	return m
}

// WithRunFunc sets the function called by the body.
func (m *Target) WithRunFunc(fn func(ctx context.Context, exec *target.Execution) error) *Target {
	m.RunFunc = fn
	return m
}

// Build returns the target.Target backed by this mock.
func (m *Target) Build() *target.Target {
	return &target.Target{
		Name:        m.name,
		Description: m.description,
		DependsOn:   m.dependsOn,
		If:          m.ifProp,
		Unless:      m.unlessProp,
		Body:        target.BodyFunc(m.run),
	}
}

func (m *Target) run(ctx context.Context, exec *target.Execution) error {
	atomic.AddInt32(&m.runCount, 1)
	m.mu.Lock()
	m.lastExec = exec
	m.mu.Unlock()

	if m.recorder != nil {
		m.recorder.record(m.name)
	}
	if m.appendValue != "" {
		exec.Result.Append(m.appendValue)
	}
	if m.RunFunc != nil {
		return m.RunFunc(ctx, exec)
	}
	return nil
}

// Test inspection methods

// RunCount returns the number of times the body ran.
func (m *Target) RunCount() int32 {
	return atomic.LoadInt32(&m.runCount)
}

// LastExecution returns the execution passed to the most recent run, or nil.
func (m *Target) LastExecution() *target.Execution {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastExec
}

// Reset clears run tracking state.
func (m *Target) Reset() {
	atomic.StoreInt32(&m.runCount, 0)
	m.mu.Lock()
	m.lastExec = nil
	m.mu.Unlock()
}
