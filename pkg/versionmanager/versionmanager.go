// Package versionmanager drives the external runtime version manager
// (phpbrew by default) through a process runner.
package versionmanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/runtimeup/pkg/buildcmd"
	"github.com/arthur-debert/runtimeup/pkg/errors"
	"github.com/arthur-debert/runtimeup/pkg/logging"
	"github.com/arthur-debert/runtimeup/pkg/paths"
	"github.com/arthur-debert/runtimeup/pkg/runner"
	"github.com/arthur-debert/runtimeup/pkg/types"
	"github.com/rs/zerolog"
	"mvdan.cc/sh/v3/syntax"
)

const (
	DefaultName       = "phpbrew"
	DefaultBashrc     = "~/.phpbrew/bashrc"
	DefaultInstallURL = "https://github.com/phpbrew/phpbrew/wiki/Quick-Start"

	// NotFoundPhrase is how bash reports an executable missing from PATH
	NotFoundPhrase = "command not found"
)

// Options configure a Tool
type Options struct {
	Name       string
	Bashrc     string
	InstallURL string
}

// Tool issues version manager subcommands
type Tool struct {
	runner     runner.Runner
	name       string
	bashrc     string
	installURL string
	logger     zerolog.Logger
}

// New returns a Tool running its subcommands through r
func New(r runner.Runner, opts Options) *Tool {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Bashrc == "" {
		opts.Bashrc = DefaultBashrc
	}
	if opts.InstallURL == "" {
		opts.InstallURL = DefaultInstallURL
	}
	return &Tool{
		runner:     r,
		name:       opts.Name,
		bashrc:     opts.Bashrc,
		installURL: opts.InstallURL,
		logger:     logging.GetLogger("versionmanager").With().Str("tool", opts.Name).Logger(),
	}
}

// Name returns the tool executable name
func (t *Tool) Name() string {
	return t.name
}

// InstallURL points users at install instructions for the tool
func (t *Tool) InstallURL() string {
	return t.installURL
}

// IsToolMissing reports whether a failed outcome means the tool named name
// could not be found. Only "<name>: command not found" counts, so a missing
// helper inside the tool is not mistaken for the tool itself.
func IsToolMissing(name string, outcome types.ProcessOutcome) bool {
	if outcome.ExitedSuccessfully {
		return false
	}
	phrase := name + ": " + NotFoundPhrase
	return strings.Contains(outcome.FailureReason, phrase) ||
		strings.Contains(outcome.CapturedText, phrase)
}

// VersionCommand reports the tool version
func (t *Tool) VersionCommand() string {
	return mustQuote(t.name) + " -v"
}

// ListCommand lists installed runtime versions
func (t *Tool) ListCommand() string {
	return mustQuote(t.name) + " list"
}

// LoadedExtensionsCommand lists the modules compiled into or loaded by binaryPath
func LoadedExtensionsCommand(binaryPath string) string {
	return mustQuote(binaryPath) + " -m"
}

// ExtensionInstallCommand builds the shell line installing ext into version.
// Build options are appended verbatim after "--".
func (t *Tool) ExtensionInstallCommand(version string, ext types.ExtensionSpec) (string, error) {
	name := mustQuote(t.name)
	var b strings.Builder
	fmt.Fprintf(&b, "source %s && %s use %s && %s ext install %s",
		mustQuote(paths.ExpandHome(t.bashrc)), name, mustQuote(version), name, mustQuote(ext.Name))
	if ext.HasBuildOptions() {
		b.WriteString(" -- ")
		b.WriteString(ext.BuildOptions)
	}

	command := b.String()
	if err := buildcmd.ValidateShell(command); err != nil {
		return "", errors.Wrapf(err, errors.ErrExtensionInstall, "invalid build options for extension %s", ext.Name).
			WithDetail("options", ext.BuildOptions)
	}
	return command, nil
}

// CheckInvocable runs "<tool> -v"
func (t *Tool) CheckInvocable(ctx context.Context) error {
	outcome := t.runner.RunCaptured(ctx, t.VersionCommand())
	if outcome.ExitedSuccessfully {
		t.logger.Debug().Str("version", firstLine(outcome.CapturedText)).Msg("Version manager available")
		return nil
	}

	if IsToolMissing(t.name, outcome) {
		return errors.Newf(errors.ErrToolMissing, "%s is not installed. See %s for install instructions", t.name, t.installURL).
			WithDetail("tool", t.name).
			WithDetail("install_url", t.installURL)
	}
	return errors.Newf(errors.ErrBuildFailed, "%s is not usable", t.name).
		WithDetail("reason", outcome.FailureReason)
}

// ListInstalled returns the raw "list installed versions" output
func (t *Tool) ListInstalled(ctx context.Context) (string, error) {
	outcome := t.runner.RunCaptured(ctx, t.ListCommand())
	if !outcome.ExitedSuccessfully {
		return "", errors.Newf(errors.ErrListingFailed, "could not list versions installed by %s", t.name).
			WithDetail("reason", outcome.FailureReason)
	}
	return outcome.CapturedText, nil
}

// IsInstalled reports whether the version manager already has spec's version
func (t *Tool) IsInstalled(ctx context.Context, spec types.RuntimeSpec) (bool, error) {
	listing, err := t.ListInstalled(ctx)
	if err != nil {
		return false, err
	}
	return spec.MatchesInstalled(listing), nil
}

// Install runs a synthesized build, streaming its output to onLine
func (t *Tool) Install(ctx context.Context, cmd buildcmd.BuildCommand, onLine types.LineHandler) error {
	command, err := cmd.Render()
	if err != nil {
		return errors.Wrapf(err, errors.ErrBuildFailed, "cannot build install command for %s", cmd.Version)
	}

	outcome := t.runner.RunStreamed(ctx, command, onLine)
	if !outcome.ExitedSuccessfully {
		return errors.Newf(errors.ErrBuildFailed, "building version %s failed", cmd.Version).
			WithDetail("exit_code", outcome.ExitCode).
			WithDetail("reason", outcome.FailureReason)
	}
	return nil
}

// LoadedExtensions asks the runtime binary which extensions it has
func (t *Tool) LoadedExtensions(ctx context.Context, binaryPath string) (types.ExtensionSet, error) {
	outcome := t.runner.RunCaptured(ctx, LoadedExtensionsCommand(binaryPath))
	if !outcome.ExitedSuccessfully {
		return nil, errors.Newf(errors.ErrListingFailed, "could not list extensions loaded by %s", binaryPath).
			WithDetail("reason", outcome.FailureReason)
	}
	return ParseModules(outcome.CapturedText), nil
}

// InstallExtension installs one extension into version
func (t *Tool) InstallExtension(ctx context.Context, version string, ext types.ExtensionSpec, onLine types.LineHandler) error {
	command, err := t.ExtensionInstallCommand(version, ext)
	if err != nil {
		return err
	}

	outcome := t.runner.RunStreamed(ctx, command, onLine)
	if !outcome.ExitedSuccessfully {
		return errors.Newf(errors.ErrExtensionInstall, "installing extension %s failed", ext.Name).
			WithDetail("extension", ext.Name).
			WithDetail("exit_code", outcome.ExitCode).
			WithDetail("reason", outcome.FailureReason)
	}
	return nil
}

// ParseModules reads "php -m" style output: one module per line, with
// bracketed section headers such as "[PHP Modules]".
func ParseModules(output string) types.ExtensionSet {
	set := types.NewExtensionSet()
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") {
			continue
		}
		set.Add(line)
	}
	return set
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// mustQuote quotes a word for bash. Words that cannot be quoted (NUL
// bytes) are returned as is and rejected by the shell later.
func mustQuote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return s
	}
	return q
}
