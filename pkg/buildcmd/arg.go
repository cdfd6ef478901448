package buildcmd

import (
	"fmt"

	"mvdan.cc/sh/v3/syntax"
)

// ArgKind tells how an argument is rendered to shell text
type ArgKind int

const (
	// KindWord is a plain word. Its value is shell-quoted when needed.
	KindWord ArgKind = iota
	// KindPath is a fixed filesystem path on the build host
	KindPath
	// KindPrefixLookup resolves a package's install prefix at run time,
	// e.g. "$(brew --prefix openssl)"
	KindPrefixLookup
	// KindSubstitution is a trusted command substitution such as $(nproc)
	KindSubstitution
)

// Arg is one word of a synthesized command.
//
// Flag is a trusted literal (a variant or configure flag) and is written
// as is. Value is attached to Flag with "=" when Flag is set, otherwise it
// is the whole word.
type Arg struct {
	Kind  ArgKind
	Flag  string
	Value string
}

// Word returns a plain, quoted word
func Word(value string) Arg {
	return Arg{Kind: KindWord, Value: value}
}

// Flag returns a bare flag such as "+bcmath" or "--"
func Flag(flag string) Arg {
	return Arg{Kind: KindWord, Flag: flag}
}

// FlagValue returns flag=value with a literal value
func FlagValue(flag, value string) Arg {
	return Arg{Kind: KindWord, Flag: flag, Value: value}
}

// FlagPath returns flag=path with a fixed path
func FlagPath(flag, path string) Arg {
	return Arg{Kind: KindPath, Flag: flag, Value: path}
}

// FlagLookup returns flag="$(<prefix tool> --prefix formula)". The
// substitution is double quoted so a prefix with spaces stays one word.
func FlagLookup(flag, formula string) Arg {
	return Arg{Kind: KindPrefixLookup, Flag: flag, Value: formula}
}

// Substitution returns a trusted command substitution
func Substitution(command string) Arg {
	return Arg{Kind: KindSubstitution, Value: command}
}

// IsLibraryHint reports whether the argument points the compiler at a
// native library location
func (a Arg) IsLibraryHint() bool {
	return a.Kind == KindPath || a.Kind == KindPrefixLookup
}

// render serializes the argument. prefixTool is the package manager used
// for prefix lookups.
func (a Arg) render(prefixTool string) (string, error) {
	var value string
	switch a.Kind {
	case KindSubstitution:
		value = "$(" + a.Value + ")"
	case KindPrefixLookup:
		formula, err := quote(a.Value)
		if err != nil {
			return "", err
		}
		value = fmt.Sprintf(`"$(%s --prefix %s)"`, prefixTool, formula)
	default:
		if a.Value == "" {
			return a.Flag, nil
		}
		q, err := quote(a.Value)
		if err != nil {
			return "", err
		}
		value = q
	}

	if a.Flag == "" {
		return value, nil
	}
	return a.Flag + "=" + value, nil
}

func quote(s string) (string, error) {
	return syntax.Quote(s, syntax.LangBash)
}
