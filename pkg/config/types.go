package config

import "time"

// Config is the fully merged runtimeup configuration.
// It is loaded once at startup and treated as read-only afterwards.
type Config struct {
	Runtime    RuntimeConfig     `koanf:"runtime"`
	Tool       ToolConfig        `koanf:"tool"`
	Template   TemplateConfig    `koanf:"template"`
	Extensions []ExtensionConfig `koanf:"extensions"`
}

// RuntimeConfig selects the runtime version to provision
type RuntimeConfig struct {
	Version        string `koanf:"version"`
	VersionPattern string `koanf:"version_pattern"`
	BinaryPath     string `koanf:"binary_path"`
}

// ToolConfig describes how the version manager is invoked
type ToolConfig struct {
	Name       string        `koanf:"name"`
	Bashrc     string        `koanf:"bashrc"`
	Shell      string        `koanf:"shell"`
	Timeout    time.Duration `koanf:"timeout"`
	InstallURL string        `koanf:"install_url"`
}

// TemplateConfig points at the runtime configuration template
type TemplateConfig struct {
	Path        string            `koanf:"path"`
	Target      string            `koanf:"target"`
	DisplayName string            `koanf:"display_name"`
	Variables   map[string]string `koanf:"variables"`
}

// ExtensionConfig is one required native extension
type ExtensionConfig struct {
	Name    string `koanf:"name"`
	Options string `koanf:"options"`
}
