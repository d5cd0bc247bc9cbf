// Package config provides loading and validation for gantry build descriptors.
package config

// Descriptor represents a complete build descriptor file.
type Descriptor struct {
	Project    ProjectConfig     `json:"project"`
	Properties map[string]string `json:"properties,omitempty"`
	Targets    []TargetConfig    `json:"targets,omitempty"`
}

// ProjectConfig contains project metadata.
type ProjectConfig struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Default     string `json:"default,omitempty"`
	BaseDir     string `json:"basedir,omitempty"`
}

// TargetConfig defines a named target and the tasks its body runs.
type TargetConfig struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Depends     []string     `json:"depends,omitempty"`
	If          string       `json:"if,omitempty"`
	Unless      string       `json:"unless,omitempty"`
	Tasks       []TaskConfig `json:"tasks,omitempty"`
}

// TaskConfig holds exactly one task definition.
type TaskConfig struct {
	Echo   *EchoTask   `json:"echo,omitempty"`
	Result *ResultTask `json:"result,omitempty"`
	Gant   *GantTask   `json:"gant,omitempty"`
	Sh     *ShTask     `json:"sh,omitempty"`
	Fail   *FailTask   `json:"fail,omitempty"`
}

// Kind returns the name of the task defined, or "" when none or several are set.
func (t TaskConfig) Kind() string {
	var kinds []string
	if t.Echo != nil {
		kinds = append(kinds, "echo")
	}
	if t.Result != nil {
		kinds = append(kinds, "result")
	}
	if t.Gant != nil {
		kinds = append(kinds, "gant")
	}
	if t.Sh != nil {
		kinds = append(kinds, "sh")
	}
	if t.Fail != nil {
		kinds = append(kinds, "fail")
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// EchoTask prints a message to the build transcript.
type EchoTask struct {
	Message string `json:"message"`
}

// ResultTask writes a value to the execution result.
type ResultTask struct {
	Value string `json:"value"`
	Mode  string `json:"mode,omitempty"` // "append" (default) or "set"
}

// GantTask runs targets of a Gantfile as a nested build.
type GantTask struct {
	File        string       `json:"file,omitempty"`
	Dir         string       `json:"dir,omitempty"`
	Target      string       `json:"target,omitempty"`
	Targets     []string     `json:"targets,omitempty"`
	Definitions []Definition `json:"definitions,omitempty"`
}

// Names returns the requested target names: Target first, then Targets.
func (g GantTask) Names() []string {
	var names []string
	if g.Target != "" {
		names = append(names, g.Target)
	}
	return append(names, g.Targets...)
}

// Definition is a name with an optional value passed to a nested build.
type Definition struct {
	Name  string  `json:"name"`
	Value *string `json:"value,omitempty"`
}

// ShTask runs a POSIX shell snippet.
type ShTask struct {
	Command string `json:"command"`
	Dir     string `json:"dir,omitempty"`
}

// FailTask fails the build.
type FailTask struct {
	Message string `json:"message,omitempty"`
}
