package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfigContent_RoundTrip(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{SkipEnv: true})
	require.NoError(t, err)
	cfg.Runtime.Version = "8.2.0"
	cfg.Runtime.VersionPattern = DefaultVersionPattern("8.2.0")

	content, err := GenerateConfigContent(cfg, false)
	require.NoError(t, err)
	assert.Contains(t, content, "[runtime]")
	assert.Contains(t, content, "[[extensions]]")

	path := writeFile(t, filepath.Join(t.TempDir(), "generated.toml"), content)
	reloaded, err := Load(LoadOptions{ConfigFile: path, SkipEnv: true})
	require.NoError(t, err)

	assert.Equal(t, cfg.Runtime, reloaded.Runtime)
	assert.Equal(t, cfg.Tool, reloaded.Tool)
	assert.Equal(t, cfg.Extensions, reloaded.Extensions)
	assert.Equal(t, cfg.Template.Variables, reloaded.Template.Variables)
}

func TestGenerateConfigContent_Commented(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{SkipEnv: true})
	require.NoError(t, err)

	content, err := GenerateConfigContent(cfg, true)
	require.NoError(t, err)

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "[") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "#"), "line %q should be commented", line)
	}

	// A fully commented file loads back to the defaults
	path := writeFile(t, filepath.Join(t.TempDir(), "commented.toml"), content)
	reloaded, err := Load(LoadOptions{ConfigFile: path, SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, cfg.Runtime, reloaded.Runtime)
}

func TestCommentOutConfigValues(t *testing.T) {
	in := "# header\n\n[tool]\nname = 'phpbrew'\n  [[extensions]]\n  name = 'gd'"
	want := "# header\n\n[tool]\n# name = 'phpbrew'\n#   [[extensions]]\n#   name = 'gd'"
	assert.Equal(t, want, commentOutConfigValues(in))
}
