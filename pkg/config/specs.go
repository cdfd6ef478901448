package config

import (
	"regexp"

	"github.com/arthur-debert/runtimeup/pkg/paths"
	"github.com/arthur-debert/runtimeup/pkg/types"
)

// RuntimeSpec converts the runtime section into the immutable spec used by
// the pipeline. The pattern was validated by Load, so MustCompile is safe
// for a loaded Config.
func (c *Config) RuntimeSpec() types.RuntimeSpec {
	return types.RuntimeSpec{
		RequiredVersion: c.Runtime.Version,
		VersionPattern:  regexp.MustCompile(c.Runtime.VersionPattern),
		BinaryPath:      paths.ExpandHome(c.Runtime.BinaryPath),
	}
}

// ExtensionSpecs returns the required extensions in declared order
func (c *Config) ExtensionSpecs() []types.ExtensionSpec {
	specs := make([]types.ExtensionSpec, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		specs = append(specs, types.ExtensionSpec{
			Name:         ext.Name,
			BuildOptions: ext.Options,
		})
	}
	return specs
}

// TemplateSpec returns where the runtime configuration is rendered from and to.
// RUNTIME_VERSION is always available to the template.
func (c *Config) TemplateSpec() types.TemplateSpec {
	vars := make(map[string]string, len(c.Template.Variables)+1)
	for k, v := range c.Template.Variables {
		vars[k] = v
	}
	vars["RUNTIME_VERSION"] = c.Runtime.Version

	return types.TemplateSpec{
		TargetPath:   paths.ExpandHome(c.Template.Target),
		TemplatePath: paths.ExpandHome(c.Template.Path),
		DisplayName:  c.Template.DisplayName,
		Variables:    vars,
	}
}
