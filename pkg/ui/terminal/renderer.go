// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"io"

	"github.com/arthur-debert/runtimeup/pkg/ui/text"
	"github.com/charmbracelet/lipgloss"
)

var (
	successColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	warningColor = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
	headingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	pathColor    = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#A0A8B0"}
	codeColor    = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
)

// Styles are the lipgloss styles used by the terminal renderer
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Code    lipgloss.Style
}

// NewStyles builds styles bound to renderer, so colour detection follows
// the output writer rather than stdout
func NewStyles(renderer *lipgloss.Renderer) Styles {
	return Styles{
		Title:   renderer.NewStyle().Foreground(headingColor).Bold(true),
		Label:   renderer.NewStyle().Foreground(headingColor).Bold(true),
		Success: renderer.NewStyle().Foreground(successColor).Bold(true),
		Error:   renderer.NewStyle().Foreground(errorColor).Bold(true),
		Warning: renderer.NewStyle().Foreground(warningColor).Bold(true),
		Muted:   renderer.NewStyle().Foreground(mutedColor),
		Path:    renderer.NewStyle().Foreground(pathColor).Italic(true),
		Code:    renderer.NewStyle().Foreground(codeColor),
	}
}

// Renderer is the text renderer painted with lipgloss styles
type Renderer struct {
	*text.Renderer
	styles Styles
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	styles := NewStyles(lipgloss.NewRenderer(w))
	painter := text.Painter{
		Title: paint(styles.Title),
		Label: paint(styles.Label),
		Good:  paint(styles.Success),
		Bad:   paint(styles.Error),
		Muted: paint(styles.Muted),
		Path:  paint(styles.Path),
		Code:  paint(styles.Code),
	}
	return &Renderer{
		Renderer: text.NewWithPainter(w, painter),
		styles:   styles,
	}, nil
}

// paint adapts a lipgloss style to a text.Painter field
func paint(style lipgloss.Style) func(string) string {
	return func(s string) string { return style.Render(s) }
}
