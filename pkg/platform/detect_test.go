package platform

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/runtimeup/pkg/filesystem"
	"github.com/arthur-debert/runtimeup/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manjaroRelease = `NAME="Manjaro Linux"
ID=manjaro
ID_LIKE=arch
# a comment
PRETTY_NAME='Manjaro Linux'
BROKEN LINE
`

func TestParseOSRelease(t *testing.T) {
	fields := ParseOSRelease([]byte(manjaroRelease))

	assert.Equal(t, "Manjaro Linux", fields["NAME"])
	assert.Equal(t, "manjaro", fields["ID"])
	assert.Equal(t, "arch", fields["ID_LIKE"])
	assert.Equal(t, "Manjaro Linux", fields["PRETTY_NAME"])
	assert.NotContains(t, fields, "BROKEN LINE")
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		goos  string
		files map[string]string
		want  types.OSDescriptor
	}{
		{
			name:  "manjaro",
			goos:  "linux",
			files: map[string]string{"/etc/os-release": manjaroRelease},
			want:  types.OSDescriptor{Family: types.OSFamilyLinux, Distribution: "Manjaro Linux"},
		},
		{
			name:  "fallback path and ID only",
			goos:  "linux",
			files: map[string]string{"/usr/lib/os-release": "ID=ubuntu\n"},
			want:  types.OSDescriptor{Family: types.OSFamilyLinux, Distribution: "ubuntu"},
		},
		{
			name: "linux without os-release",
			goos: "linux",
			want: types.OSDescriptor{Family: types.OSFamilyLinux},
		},
		{
			name:  "macos ignores os-release",
			goos:  "darwin",
			files: map[string]string{"/etc/os-release": manjaroRelease},
			want:  types.OSDescriptor{Family: types.OSFamilyMacOS},
		},
		{
			name: "other",
			goos: "freebsd",
			want: types.OSDescriptor{Family: types.OSFamilyOther},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := filesystem.NewMemory()
			for path, content := range tt.files {
				require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
				require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
			}

			got := NewDetectorFor(tt.goos, fs).Detect()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOSDescriptorHelpers(t *testing.T) {
	d := types.OSDescriptor{Family: types.OSFamilyLinux, Distribution: "Manjaro Linux"}

	assert.True(t, d.IsDistribution("manjaro"))
	assert.False(t, d.IsDistribution("ubuntu"))
	assert.False(t, d.IsDistribution(""))
	assert.Equal(t, "linux/Manjaro Linux", d.String())
	assert.Equal(t, "macos", types.OSDescriptor{Family: types.OSFamilyMacOS}.String())
}
