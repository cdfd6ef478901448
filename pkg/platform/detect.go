// Package platform detects the host operating system family and, on Linux,
// the distribution name used for build command quirks.
package platform

import (
	"bufio"
	"bytes"
	"runtime"
	"strings"

	"github.com/arthur-debert/runtimeup/pkg/filesystem"
	"github.com/arthur-debert/runtimeup/pkg/logging"
	"github.com/arthur-debert/runtimeup/pkg/types"
)

// OSReleasePaths are read in order; the first readable one wins
var OSReleasePaths = []string{"/etc/os-release", "/usr/lib/os-release"}

// Detector produces the OS descriptor for the current host
type Detector struct {
	goos string
	fs   types.FS
}

// NewDetector creates a detector for the running host
func NewDetector() *Detector {
	return &Detector{goos: runtime.GOOS, fs: filesystem.NewOS()}
}

// NewDetectorFor creates a detector for an explicit GOOS value and filesystem
func NewDetectorFor(goos string, fs types.FS) *Detector {
	return &Detector{goos: goos, fs: fs}
}

// Detect returns the OS descriptor. It never fails: an unreadable
// os-release file only leaves the distribution empty.
func (d *Detector) Detect() types.OSDescriptor {
	logger := logging.GetLogger("platform")

	desc := types.OSDescriptor{Family: FamilyFor(d.goos)}
	if desc.Family == types.OSFamilyLinux {
		desc.Distribution = d.linuxDistribution()
	}

	logger.Debug().
		Str("family", string(desc.Family)).
		Str("distribution", desc.Distribution).
		Msg("Detected platform")

	return desc
}

// FamilyFor maps a GOOS value to an OS family
func FamilyFor(goos string) types.OSFamily {
	switch goos {
	case "linux":
		return types.OSFamilyLinux
	case "darwin":
		return types.OSFamilyMacOS
	default:
		return types.OSFamilyOther
	}
}

func (d *Detector) linuxDistribution() string {
	for _, path := range OSReleasePaths {
		data, err := d.fs.ReadFile(path)
		if err != nil {
			continue
		}
		fields := ParseOSRelease(data)
		if name := fields["NAME"]; name != "" {
			return name
		}
		if id := fields["ID"]; id != "" {
			return id
		}
	}
	return ""
}

// ParseOSRelease parses the KEY=value lines of an os-release file.
// Values may be double or single quoted; comments and blank lines are ignored.
func ParseOSRelease(data []byte) map[string]string {
	fields := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') || (value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		fields[strings.TrimSpace(key)] = value
	}

	return fields
}
