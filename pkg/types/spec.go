package types

import (
	"regexp"
	"sort"
	"strings"
)

// RuntimeSpec describes the runtime version that must be available.
// It is built once from configuration and never mutated afterwards.
type RuntimeSpec struct {
	// RequiredVersion is the exact version handed to the version manager, e.g. "8.1.0"
	RequiredVersion string

	// VersionPattern is tested against the output of "list installed versions"
	VersionPattern *regexp.Regexp

	// BinaryPath is where the runtime binary lives once built
	BinaryPath string
}

// MatchesInstalled reports whether the listing output of the version manager
// contains the required version.
func (s RuntimeSpec) MatchesInstalled(listing string) bool {
	if s.VersionPattern == nil {
		return false
	}
	return s.VersionPattern.MatchString(listing)
}

// ExtensionSpec is a required native extension.
type ExtensionSpec struct {
	Name string

	// BuildOptions are passed verbatim to the extension build, after "--"
	BuildOptions string
}

// HasBuildOptions reports whether the extension carries extra build options.
func (e ExtensionSpec) HasBuildOptions() bool {
	return e.BuildOptions != ""
}

// TemplateSpec points at the configuration template and where it is rendered.
type TemplateSpec struct {
	TargetPath   string
	TemplatePath string
	DisplayName  string
	Variables    map[string]string
}

// ExtensionSet is the set of extensions the runtime reports as loaded.
// Names compare case-insensitively.
type ExtensionSet map[string]struct{}

// NewExtensionSet returns a set holding names
func NewExtensionSet(names ...string) ExtensionSet {
	s := make(ExtensionSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name
func (s ExtensionSet) Add(name string) {
	s[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
}

// Has reports whether name is in the set
func (s ExtensionSet) Has(name string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Names returns the members in sorted order
func (s ExtensionSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
