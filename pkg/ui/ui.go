// Package ui renders command results and progress for the terminal.
// Results can be rendered as rich terminal output, plain text, JSON or YAML.
package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/runtimeup/pkg/ui/json"
	"github.com/arthur-debert/runtimeup/pkg/ui/terminal"
	"github.com/arthur-debert/runtimeup/pkg/ui/text"
	"github.com/arthur-debert/runtimeup/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a report or any other value
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// FormatAuto picks terminal or text from the output's capabilities.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(output), output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	case FormatYAML:
		return yaml.New(output)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
