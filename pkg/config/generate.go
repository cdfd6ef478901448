package config

import (
	"strings"

	"github.com/arthur-debert/runtimeup/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config in the on-disk layout. Durations are written as
// strings so the output round-trips through the duration decode hook.
type fileConfig struct {
	Runtime struct {
		Version        string `toml:"version"`
		VersionPattern string `toml:"version_pattern"`
		BinaryPath     string `toml:"binary_path"`
	} `toml:"runtime"`
	Tool struct {
		Name       string `toml:"name"`
		Bashrc     string `toml:"bashrc"`
		Shell      string `toml:"shell"`
		Timeout    string `toml:"timeout"`
		InstallURL string `toml:"install_url"`
	} `toml:"tool"`
	Template struct {
		Path        string            `toml:"path"`
		Target      string            `toml:"target"`
		DisplayName string            `toml:"display_name"`
		Variables   map[string]string `toml:"variables"`
	} `toml:"template"`
	Extensions []extensionFile `toml:"extensions"`
}

type extensionFile struct {
	Name    string `toml:"name"`
	Options string `toml:"options,omitempty"`
}

// GenerateConfigContent renders cfg as a TOML user configuration file.
// When commented is true every value line is commented out, producing a
// reference file that changes nothing until edited.
func GenerateConfigContent(cfg *Config, commented bool) (string, error) {
	var out fileConfig
	out.Runtime.Version = cfg.Runtime.Version
	out.Runtime.VersionPattern = cfg.Runtime.VersionPattern
	out.Runtime.BinaryPath = cfg.Runtime.BinaryPath
	out.Tool.Name = cfg.Tool.Name
	out.Tool.Bashrc = cfg.Tool.Bashrc
	out.Tool.Shell = cfg.Tool.Shell
	out.Tool.Timeout = cfg.Tool.Timeout.String()
	out.Tool.InstallURL = cfg.Tool.InstallURL
	out.Template.Path = cfg.Template.Path
	out.Template.Target = cfg.Template.Target
	out.Template.DisplayName = cfg.Template.DisplayName
	out.Template.Variables = cfg.Template.Variables
	for _, ext := range cfg.Extensions {
		out.Extensions = append(out.Extensions, extensionFile{Name: ext.Name, Options: ext.Options})
	}

	data, err := toml.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration")
	}

	content := "# runtimeup configuration\n\n" + string(data)
	if commented {
		return commentOutConfigValues(content), nil
	}
	return content, nil
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep table headers (e.g., [runtime]) as-is. Array table headers
		// are commented too, an empty [[extensions]] entry is not valid.
		if strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "[[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
