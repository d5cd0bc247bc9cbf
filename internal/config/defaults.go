package config

// Default configuration values.
const (
	DefaultBaseDir     = "."
	DefaultGantfile    = "build.gant"
	DefaultResultMode  = ResultModeAppend
	DefaultFailMessage = "No message"
)

// Result modes.
const (
	ResultModeAppend = "append"
	ResultModeSet    = "set"
)

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(d *Descriptor) {
	if d.Project.BaseDir == "" {
		d.Project.BaseDir = DefaultBaseDir
	}
	if d.Properties == nil {
		d.Properties = make(map[string]string)
	}
	for i := range d.Targets {
		applyTaskDefaults(d.Targets[i].Tasks)
	}
}

func applyTaskDefaults(tasks []TaskConfig) {
	for _, task := range tasks {
		switch {
		case task.Result != nil && task.Result.Mode == "":
			task.Result.Mode = DefaultResultMode
		case task.Gant != nil && task.Gant.File == "":
			task.Gant.File = DefaultGantfile
		case task.Fail != nil && task.Fail.Message == "":
			task.Fail.Message = DefaultFailMessage
		}
	}
}
