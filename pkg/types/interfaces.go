package types

import (
	"io/fs"
)

// FS is the filesystem interface required for runtimeup operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Other operations
	Remove(name string) error

	// Lstat does not follow symlinks. Test filesystems may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)
}

// Logger is the fire-and-forget, user-facing progress sink used by the
// provisioning stages. Structured diagnostics go through zerolog instead.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string, detail ...string)
}
