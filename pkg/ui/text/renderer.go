// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/runtimeup/pkg/types"
)

// Painter decorates text fragments. The zero value leaves them untouched.
type Painter struct {
	Title func(string) string
	Label func(string) string
	Good  func(string) string
	Bad   func(string) string
	Muted func(string) string
	Path  func(string) string
	Code  func(string) string
}

func apply(f func(string) string, s string) string {
	if f == nil {
		return s
	}
	return f(s)
}

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
	paint  Painter
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// NewWithPainter creates a renderer decorating its output with p
func NewWithPainter(output io.Writer, p Painter) *Renderer {
	return &Renderer{output: output, paint: p}
}

// RenderResult renders status and plan reports. Anything else is printed
// with %v.
func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder
	switch v := result.(type) {
	case *types.StatusReport:
		r.status(&b, *v)
	case types.StatusReport:
		r.status(&b, v)
	case *types.PlanReport:
		r.plan(&b, *v)
	case types.PlanReport:
		r.plan(&b, v)
	default:
		fmt.Fprintf(&b, "%v\n", v)
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %s\n", apply(r.paint.Bad, "Error:"), err.Error())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", apply(r.paint.Label, fmt.Sprintf("%-11s", label)), value)
}

func (r *Renderer) flag(ok bool, yes, no string) string {
	if ok {
		return apply(r.paint.Good, yes)
	}
	return apply(r.paint.Bad, no)
}

func (r *Renderer) status(b *strings.Builder, s types.StatusReport) {
	b.WriteString(apply(r.paint.Title, "Runtime status") + "\n")
	r.row(b, "OS", s.OS)
	r.row(b, "Version", s.Version)
	r.row(b, "Binary", apply(r.paint.Path, s.BinaryPath)+" "+r.flag(s.BinaryPresent, "(present)", "(missing)"))
	r.row(b, "Tool", s.Tool+" "+r.flag(s.ToolAvailable, "(available)", "(not found)"))
	r.row(b, "Installed", r.flag(s.Installed, "yes", "no"))
	if s.ConfigPath != "" {
		r.row(b, "Config", apply(r.paint.Path, s.ConfigPath)+" "+r.flag(s.ConfigPresent, "(present)", "(missing)"))
	}

	if len(s.Extensions) > 0 {
		b.WriteString("\n" + apply(r.paint.Title, "Extensions") + "\n")
		for _, ext := range s.Extensions {
			if ext.Loaded {
				fmt.Fprintf(b, "  %s %s\n", apply(r.paint.Good, "✓"), ext.Name)
			} else {
				fmt.Fprintf(b, "  %s %s %s\n", apply(r.paint.Bad, "✗"), ext.Name, apply(r.paint.Muted, "(missing)"))
			}
		}
	}

	if len(s.Problems) > 0 {
		b.WriteString("\n" + apply(r.paint.Title, "Problems") + "\n")
		for _, p := range s.Problems {
			fmt.Fprintf(b, "  - %s\n", p)
		}
	}

	b.WriteString("\n")
	if s.Ready() {
		b.WriteString(apply(r.paint.Good, "Ready") + "\n")
	} else {
		b.WriteString(apply(r.paint.Bad, "Not ready") + apply(r.paint.Muted, ": run \"runtimeup install\"") + "\n")
	}
}

func (r *Renderer) plan(b *strings.Builder, p types.PlanReport) {
	b.WriteString(apply(r.paint.Title, "Install plan") + "\n")
	r.row(b, "OS", p.OS)
	r.row(b, "Version", p.Version)
	if p.ConfigTarget != "" {
		r.row(b, "Config", apply(r.paint.Path, p.ConfigTarget))
	}
	if len(p.Extensions) > 0 {
		r.row(b, "Extensions", strings.Join(p.Extensions, ", "))
	}

	b.WriteString("\n" + apply(r.paint.Title, "Commands") + "\n")
	if len(p.Commands) == 0 {
		b.WriteString("  " + apply(r.paint.Muted, "nothing to run") + "\n")
	}
	for i, c := range p.Commands {
		fmt.Fprintf(b, "  %d. %s\n", i+1, apply(r.paint.Code, c))
	}

	for _, n := range p.Notes {
		fmt.Fprintf(b, "\n%s\n", apply(r.paint.Muted, n))
	}
}
