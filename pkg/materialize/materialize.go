// Package materialize renders a runtime configuration file from a template.
package materialize

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/arthur-debert/runtimeup/pkg/errors"
	"github.com/arthur-debert/runtimeup/pkg/logging"
	"github.com/arthur-debert/runtimeup/pkg/types"
	"github.com/rs/zerolog"
)

//go:embed templates/php.template.ini
var defaultTemplate string

// DefaultTemplate returns the built-in runtime configuration template
func DefaultTemplate() string {
	return defaultTemplate
}

// Request asks for one configuration file
type Request struct {
	TargetPath string

	// TemplatePath is read through the filesystem. Empty selects the
	// built-in template.
	TemplatePath string

	DisplayName string

	// Overwrite replaces an existing target. Without it an existing
	// target is kept as is.
	Overwrite bool

	Variables map[string]string
}

// RequestFor builds a Request from a template spec
func RequestFor(spec types.TemplateSpec, overwrite bool) Request {
	return Request{
		TargetPath:   spec.TargetPath,
		TemplatePath: spec.TemplatePath,
		DisplayName:  spec.DisplayName,
		Overwrite:    overwrite,
		Variables:    spec.Variables,
	}
}

// Materializer writes rendered configuration files
type Materializer struct {
	fs       types.FS
	reporter types.Logger
	baseVars map[string]string
	logger   zerolog.Logger
}

// New returns a Materializer. HOME, USER, SHELL and HOSTNAME are always
// available to templates; request variables override them.
func New(fs types.FS, reporter types.Logger) *Materializer {
	hostname, _ := os.Hostname()
	return &Materializer{
		fs:       fs,
		reporter: reporter,
		baseVars: map[string]string{
			"HOME":     os.Getenv("HOME"),
			"USER":     os.Getenv("USER"),
			"SHELL":    os.Getenv("SHELL"),
			"HOSTNAME": hostname,
		},
		logger: logging.GetLogger("materialize"),
	}
}

// Materialize renders req and reports success. Failures are logged.
func (m *Materializer) Materialize(req Request) bool {
	if err := m.MaterializeErr(req); err != nil {
		m.logger.Error().
			Err(err).
			Str("target", req.TargetPath).
			Str("template", req.TemplatePath).
			Msg("Failed to write configuration")
		m.reporter.Error(fmt.Sprintf("Failed to configure %s. See ERROR log above.", req.DisplayName), errors.UserMessage(err))
		return false
	}
	return true
}

// MaterializeErr is Materialize returning the failure
func (m *Materializer) MaterializeErr(req Request) error {
	if req.TargetPath == "" {
		return errors.New(errors.ErrConfigFailed, "no configuration target path")
	}

	logger := m.logger.With().Str("target", req.TargetPath).Logger()

	if !req.Overwrite {
		if _, err := m.fs.Stat(req.TargetPath); err == nil {
			logger.Info().Msg("Configuration exists, keeping it")
			return nil
		}
	}

	content, name, err := m.loadTemplate(req.TemplatePath)
	if err != nil {
		return err
	}

	rendered, err := Render(name, content, m.variables(req.Variables))
	if err != nil {
		return err
	}

	dir := filepath.Dir(req.TargetPath)
	if err := m.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir)
	}
	if err := m.fs.WriteFile(req.TargetPath, []byte(rendered), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigFailed, "cannot write %s", req.TargetPath)
	}

	logger.Info().Str("template", name).Bool("overwrite", req.Overwrite).Msg("Configuration written")
	m.reporter.Info(fmt.Sprintf("%s configuration written to %s", req.DisplayName, req.TargetPath))
	return nil
}

func (m *Materializer) loadTemplate(path string) (content, name string, err error) {
	if path == "" {
		return defaultTemplate, "built-in", nil
	}
	data, err := m.fs.ReadFile(path)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrConfigFailed, "cannot read template %s", path)
	}
	return string(data), path, nil
}

func (m *Materializer) variables(extra map[string]string) map[string]string {
	vars := make(map[string]string, len(m.baseVars)+len(extra))
	for k, v := range m.baseVars {
		vars[k] = v
	}
	for k, v := range extra {
		vars[k] = v
	}
	return vars
}

// Render executes content as a text/template over vars. Unknown
// variables are an error.
func Render(name, content string, vars map[string]string) (string, error) {
	tmpl, err := template.New(filepath.Base(name)).Option("missingkey=error").Parse(content)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigFailed, "cannot parse template %s", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigFailed, "cannot render template %s", name)
	}
	return buf.String(), nil
}
