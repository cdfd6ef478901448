package buildcmd

import (
	"strings"

	"github.com/arthur-debert/runtimeup/pkg/errors"
	"mvdan.cc/sh/v3/syntax"
)

// BuildCommand is the structured "install version" invocation
type BuildCommand struct {
	// Tool is the version manager executable, e.g. "phpbrew"
	Tool string

	// PrefixTool resolves package prefixes for KindPrefixLookup arguments
	PrefixTool string

	// Jobs is the parallelism argument following -j
	Jobs Arg

	Version string

	// Variants are the +name / -name feature toggles
	Variants []Arg

	// Hints are passed through to the compiler toolchain after "--"
	Hints []Arg
}

// Args returns the full argument list after the tool name
func (c BuildCommand) Args() []Arg {
	args := []Arg{Word("install"), Flag("-j"), c.Jobs, Word(c.Version)}
	args = append(args, c.Variants...)
	if len(c.Hints) > 0 {
		args = append(args, Flag("--"))
		args = append(args, c.Hints...)
	}
	return args
}

// Render serializes the command to a single line of bash
func (c BuildCommand) Render() (string, error) {
	words := make([]string, 0, len(c.Variants)+len(c.Hints)+6)
	tool, err := quote(c.Tool)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot quote tool name %q", c.Tool)
	}
	words = append(words, tool)

	for _, arg := range c.Args() {
		w, err := arg.render(c.PrefixTool)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot quote argument %q", arg.Value)
		}
		words = append(words, w)
	}
	return strings.Join(words, " "), nil
}

// String is Render without the error. Unquotable input (a NUL byte)
// yields an empty string.
func (c BuildCommand) String() string {
	s, _ := c.Render()
	return s
}

// Validate checks that the serialized command parses as bash
func (c BuildCommand) Validate() error {
	s, err := c.Render()
	if err != nil {
		return err
	}
	return ValidateShell(s)
}

// ValidateShell parses script as bash and reports syntax errors
func ValidateShell(script string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	if _, err := parser.Parse(strings.NewReader(script), ""); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "command is not valid shell").
			WithDetail("command", script)
	}
	return nil
}

// HasArg reports whether the command carries an argument rendering to word
func (c BuildCommand) HasArg(word string) bool {
	for _, arg := range c.Args() {
		if w, err := arg.render(c.PrefixTool); err == nil && w == word {
			return true
		}
	}
	return false
}

// LibraryHints returns the arguments locating native libraries
func (c BuildCommand) LibraryHints() []Arg {
	var hints []Arg
	for _, arg := range append(append([]Arg{}, c.Variants...), c.Hints...) {
		if arg.IsLibraryHint() {
			hints = append(hints, arg)
		}
	}
	return hints
}
