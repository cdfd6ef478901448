// Package paths provides centralized path handling for runtimeup.
// It resolves the XDG config and state locations (with environment overrides)
// and expands "~" in user supplied paths such as the runtime binary path.
package paths
