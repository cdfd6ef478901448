// Package presence checks whether a built runtime binary is on disk.
package presence

import (
	"github.com/arthur-debert/runtimeup/pkg/logging"
	"github.com/arthur-debert/runtimeup/pkg/types"
	"github.com/rs/zerolog"
)

// Checker probes binary paths through a filesystem
type Checker struct {
	fs     types.FS
	logger zerolog.Logger
}

// New returns a Checker over fs
func New(fs types.FS) *Checker {
	return &Checker{
		fs:     fs,
		logger: logging.GetLogger("presence"),
	}
}

// Check reports whether binaryPath is an executable regular file.
// Symlinks are followed. Every failure counts as not present.
func (c *Checker) Check(binaryPath string) bool {
	if binaryPath == "" {
		return false
	}

	info, err := c.fs.Stat(binaryPath)
	if err != nil {
		c.logger.Debug().Err(err).Str("path", binaryPath).Msg("Runtime binary not found")
		return false
	}
	if !info.Mode().IsRegular() {
		c.logger.Debug().Str("path", binaryPath).Str("mode", info.Mode().String()).Msg("Runtime binary is not a regular file")
		return false
	}
	if info.Mode().Perm()&0111 == 0 {
		c.logger.Debug().Str("path", binaryPath).Msg("Runtime binary is not executable")
		return false
	}

	c.logger.Debug().Str("path", binaryPath).Msg("Runtime binary present")
	return true
}
