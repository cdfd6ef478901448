package materialize

import (
	"testing"

	"github.com/arthur-debert/runtimeup/pkg/errors"
	"github.com/arthur-debert/runtimeup/pkg/filesystem"
	"github.com/arthur-debert/runtimeup/pkg/types"
	"github.com/arthur-debert/runtimeup/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const target = "/home/tester/.phpbrew/php/php-8.1.0/etc/php.ini"

func setup(t *testing.T) (types.FS, *Materializer, *ui.Recorder) {
	t.Helper()
	t.Setenv("HOME", "/home/tester")
	fs := filesystem.NewMemory()
	rec := ui.NewRecorder()
	return fs, New(fs, rec), rec
}

func TestMaterialize_CustomTemplate(t *testing.T) {
	fs, m, rec := setup(t)
	require.NoError(t, fs.MkdirAll("/templates", 0755))
	require.NoError(t, fs.WriteFile("/templates/php.ini", []byte("memory_limit = {{ .memory_limit }}\nhome = {{ .HOME }}\n"), 0644))

	ok := m.Materialize(Request{
		TargetPath:   target,
		TemplatePath: "/templates/php.ini",
		DisplayName:  "PHP",
		Overwrite:    true,
		Variables:    map[string]string{"memory_limit": "2G"},
	})
	require.True(t, ok)

	data, err := fs.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "memory_limit = 2G\nhome = /home/tester\n", string(data))
	assert.Equal(t, []string{"PHP configuration written to " + target}, rec.Messages("info"))
}

func TestMaterialize_DefaultTemplate(t *testing.T) {
	fs, m, _ := setup(t)

	err := m.MaterializeErr(Request{
		TargetPath: target,
		Overwrite:  true,
		Variables:  map[string]string{"memory_limit": "4G", "timezone": "UTC", "RUNTIME_VERSION": "8.1.0"},
	})
	require.NoError(t, err)

	data, err := fs.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "memory_limit = 4G")
	assert.Contains(t, string(data), "date.timezone = UTC")
	assert.Contains(t, string(data), "/home/tester/.phpbrew/php/php-8.1.0/var/sessions")
}

func TestMaterialize_Overwrite(t *testing.T) {
	tests := []struct {
		name      string
		overwrite bool
		want      string
	}{
		{"overwrite replaces", true, "fresh"},
		{"keep existing", false, "old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, m, _ := setup(t)
			require.NoError(t, fs.MkdirAll("/templates", 0755))
			require.NoError(t, fs.WriteFile("/templates/t", []byte("fresh"), 0644))
			require.NoError(t, fs.MkdirAll("/home/tester/.phpbrew/php/php-8.1.0/etc", 0755))
			require.NoError(t, fs.WriteFile(target, []byte("old"), 0644))

			require.True(t, m.Materialize(Request{TargetPath: target, TemplatePath: "/templates/t", Overwrite: tt.overwrite}))

			data, err := fs.ReadFile(target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestMaterialize_Failures(t *testing.T) {
	tests := []struct {
		name     string
		template string
		req      Request
	}{
		{"missing template", "", Request{TargetPath: target, TemplatePath: "/nope", Overwrite: true}},
		{"unknown variable", "{{ .nope }}", Request{TargetPath: target, TemplatePath: "/templates/t", Overwrite: true}},
		{"bad syntax", "{{ .memory_limit ", Request{TargetPath: target, TemplatePath: "/templates/t", Overwrite: true}},
		{"no target", "x", Request{TemplatePath: "/templates/t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, m, rec := setup(t)
			if tt.template != "" {
				require.NoError(t, fs.MkdirAll("/templates", 0755))
				require.NoError(t, fs.WriteFile("/templates/t", []byte(tt.template), 0644))
			}

			err := m.MaterializeErr(tt.req)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigFailed))

			tt.req.DisplayName = "PHP"
			assert.False(t, m.Materialize(tt.req))
			require.Len(t, rec.Messages("error"), 1)
			assert.Contains(t, rec.Messages("error")[0], "See ERROR log above.")
		})
	}
}

func TestRequestFor(t *testing.T) {
	spec := types.TemplateSpec{TargetPath: target, TemplatePath: "/t", DisplayName: "PHP", Variables: map[string]string{"a": "b"}}
	req := RequestFor(spec, true)
	assert.Equal(t, Request{TargetPath: target, TemplatePath: "/t", DisplayName: "PHP", Overwrite: true, Variables: map[string]string{"a": "b"}}, req)
}
