package buildcmd

import (
	"github.com/arthur-debert/runtimeup/pkg/logging"
	"github.com/arthur-debert/runtimeup/pkg/types"
)

const (
	DefaultTool       = "phpbrew"
	DefaultPrefixTool = "brew"
)

// Quirk adds configure flags on Linux distributions that need them.
// Distribution is matched case-insensitively as a substring of the
// detected distribution name.
type Quirk struct {
	Distribution string
	Hints        []Arg
}

// DefaultQuirks are the known distribution quirks
var DefaultQuirks = []Quirk{
	{Distribution: "Manjaro", Hints: []Arg{FlagValue("--with-libdir", "lib64")}},
}

// Synthesizer builds install commands for a version manager
type Synthesizer struct {
	Tool       string
	PrefixTool string
	Quirks     []Quirk
}

// New returns a Synthesizer for tool using the default quirks
func New(tool string) *Synthesizer {
	if tool == "" {
		tool = DefaultTool
	}
	return &Synthesizer{
		Tool:       tool,
		PrefixTool: DefaultPrefixTool,
		Quirks:     DefaultQuirks,
	}
}

// Synthesize returns the install command for spec on target. Anything that is
// not Linux gets the macOS template.
func (s *Synthesizer) Synthesize(target types.OSDescriptor, spec types.RuntimeSpec) BuildCommand {
	logger := logging.GetLogger("buildcmd")

	cmd := BuildCommand{
		Tool:       s.Tool,
		PrefixTool: s.PrefixTool,
		Version:    spec.RequiredVersion,
	}

	if target.Family == types.OSFamilyLinux {
		cmd.Jobs = Substitution("nproc")
		cmd.Variants = linuxVariants()
		cmd.Hints = linuxHints()
		for _, q := range s.Quirks {
			if target.IsDistribution(q.Distribution) {
				logger.Debug().
					Str("distribution", target.Distribution).
					Str("quirk", q.Distribution).
					Msg("Applying distribution quirk")
				cmd.Hints = append(cmd.Hints, q.Hints...)
			}
		}
	} else {
		cmd.Jobs = Substitution("sysctl -n hw.ncpu")
		cmd.Variants = macVariants()
		cmd.Hints = macHints()
	}

	logger.Debug().
		Str("os", target.String()).
		Str("version", spec.RequiredVersion).
		Int("variants", len(cmd.Variants)).
		Int("hints", len(cmd.Hints)).
		Msg("Synthesized build command")
	return cmd
}

// commonVariants are enabled on every platform
var commonVariants = []string{
	"+bcmath", "+ctype", "+curl", "+dom", "+filter", "+hash", "+json",
	"+mbstring", "+xml", "+mysql", "+pdo", "+soap", "+xmlrpc", "+zip",
	"+fpm", "+gd",
}

func flags(names []string) []Arg {
	args := make([]Arg, 0, len(names))
	for _, n := range names {
		args = append(args, Flag(n))
	}
	return args
}

func linuxVariants() []Arg {
	args := []Arg{Flag("+bz2"), Flag("+iconv"), Flag("+openssl")}
	args = append(args, flags(commonVariants)...)
	return append(args, Flag("-intl"))
}

func linuxHints() []Arg {
	return []Arg{
		FlagPath("--with-freetype-dir", "/usr/include/freetype2"),
		FlagPath("--with-openssl", "/usr/"),
		FlagValue("--with-gd", "shared"),
		FlagPath("--with-jpeg-dir", "/usr/"),
		FlagPath("--with-png-dir", "/usr/"),
	}
}

func macVariants() []Arg {
	args := []Arg{
		FlagLookup("+bz2", "bzip2"),
		FlagLookup("+iconv", "libiconv"),
		FlagLookup("+openssl", "openssl"),
	}
	args = append(args, flags(commonVariants)...)
	return append(args, Flag("-intl"))
}

func macHints() []Arg {
	return []Arg{
		FlagLookup("--with-gd", "gd"),
		FlagLookup("--with-png-dir", "libpng"),
		FlagLookup("--with-zlib-dir", "zlib"),
		FlagLookup("--with-jpeg-dir", "jpeg"),
		FlagLookup("--with-xpmlib-dir", "libxpm"),
		FlagLookup("--with-freetype-dir", "freetype"),
		FlagLookup("--with-iconv-dir", "libiconv"),
	}
}
