package types

// ExtensionStatus is one required extension as seen by the status command
type ExtensionStatus struct {
	Name   string `json:"name" yaml:"name"`
	Loaded bool   `json:"loaded" yaml:"loaded"`
}

// StatusReport describes the provisioning state without changing anything
type StatusReport struct {
	OS            string            `json:"os" yaml:"os"`
	Version       string            `json:"version" yaml:"version"`
	BinaryPath    string            `json:"binary_path" yaml:"binary_path"`
	BinaryPresent bool              `json:"binary_present" yaml:"binary_present"`
	Tool          string            `json:"tool" yaml:"tool"`
	ToolAvailable bool              `json:"tool_available" yaml:"tool_available"`
	Installed     bool              `json:"installed" yaml:"installed"`
	ConfigPath    string            `json:"config_path,omitempty" yaml:"config_path,omitempty"`
	ConfigPresent bool              `json:"config_present" yaml:"config_present"`
	Extensions    []ExtensionStatus `json:"extensions" yaml:"extensions"`
	Problems      []string          `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// Ready reports whether nothing is left to provision
func (r StatusReport) Ready() bool {
	if !r.BinaryPresent {
		return false
	}
	for _, ext := range r.Extensions {
		if !ext.Loaded {
			return false
		}
	}
	return true
}

// MissingExtensions returns the names of required extensions not loaded
func (r StatusReport) MissingExtensions() []string {
	var names []string
	for _, ext := range r.Extensions {
		if !ext.Loaded {
			names = append(names, ext.Name)
		}
	}
	return names
}

// PlanReport lists the commands an install would run, in order
type PlanReport struct {
	OS            string   `json:"os" yaml:"os"`
	Version       string   `json:"version" yaml:"version"`
	BinaryPresent bool     `json:"binary_present" yaml:"binary_present"`
	Commands      []string `json:"commands" yaml:"commands"`
	ConfigTarget  string   `json:"config_target,omitempty" yaml:"config_target,omitempty"`
	Extensions    []string `json:"extensions" yaml:"extensions"`
	Notes         []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}
