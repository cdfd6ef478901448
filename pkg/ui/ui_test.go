package ui_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	rterrors "github.com/arthur-debert/runtimeup/pkg/errors"
	"github.com/arthur-debert/runtimeup/pkg/types"
	"github.com/arthur-debert/runtimeup/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleStatus() types.StatusReport {
	return types.StatusReport{
		OS:            "linux/Ubuntu",
		Version:       "8.1.0",
		BinaryPath:    "/home/tester/.phpbrew/php/php-8.1.0/bin/php",
		BinaryPresent: true,
		Tool:          "phpbrew",
		ToolAvailable: true,
		Installed:     true,
		Extensions: []types.ExtensionStatus{
			{Name: "gd", Loaded: true},
			{Name: "intl", Loaded: false},
		},
	}
}

func TestNewRenderer(t *testing.T) {
	for _, format := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON, ui.FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			r, err := ui.NewRenderer(format, &bytes.Buffer{})
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}

	r, err := ui.NewRenderer(ui.Format(999), &bytes.Buffer{})
	assert.Error(t, err)
	assert.Nil(t, r)
}

func TestTextRenderer_Status(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	report := sampleStatus()
	require.NoError(t, r.RenderResult(&report))

	out := buf.String()
	assert.Contains(t, out, "Runtime status")
	assert.Contains(t, out, "/home/tester/.phpbrew/php/php-8.1.0/bin/php (present)")
	assert.Contains(t, out, "✓ gd")
	assert.Contains(t, out, "✗ intl (missing)")
	assert.Contains(t, out, "Not ready")
}

func TestTextRenderer_Plan(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	plan := types.PlanReport{
		OS:       "linux/Manjaro Linux",
		Version:  "8.1.0",
		Commands: []string{"phpbrew -v", "phpbrew list"},
	}
	require.NoError(t, r.RenderResult(plan))

	assert.Contains(t, buf.String(), "  1. phpbrew -v\n  2. phpbrew list\n")
}

func TestJSONRenderer_Status(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(sampleStatus()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "8.1.0", decoded["version"])
	assert.Equal(t, true, decoded["binary_present"])
	assert.Len(t, decoded["extensions"], 2)
	assert.NotContains(t, decoded, "problems")
}

func TestYAMLRenderer_Status(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatYAML, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(sampleStatus()))

	var decoded types.StatusReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleStatus(), decoded)
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderError(errors.New("boom")))
	assert.JSONEq(t, `{"error":"boom","code":"UNKNOWN"}`, buf.String())
}

func TestRenderError_Coded(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	coded := rterrors.Wrap(errors.New("exit status 127"), rterrors.ErrToolMissing, "phpbrew is not installed").
		WithDetail("tool", "phpbrew")
	require.NoError(t, r.RenderError(coded))
	assert.JSONEq(t, `{"error":"phpbrew is not installed","code":"TOOL_MISSING","details":{"tool":"phpbrew"}}`, buf.String())
}
