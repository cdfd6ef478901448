package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"provisioning.md":    {Data: []byte("# Provisioning\n")},
		"option-timeout.txt": {Data: []byte("Timeout help")},
		"nested/config.md":   {Data: []byte("# Config\n")},
		"notes.rst":          {Data: []byte("ignored")},
	}
}

func TestScanTopics(t *testing.T) {
	tm := New(testFS(), Options{})
	require.NoError(t, tm.scanTopics())

	assert.Equal(t, []string{"config", "option-timeout", "provisioning"}, tm.ListTopics())

	topic, ok := tm.GetTopic("config")
	require.True(t, ok)
	assert.Equal(t, "nested/config.md", topic.FilePath)
	assert.Equal(t, "# Config\n", topic.Content)
}

func TestScanTopics_CustomExtensions(t *testing.T) {
	tm := New(testFS(), Options{Extensions: []string{".rst"}})
	require.NoError(t, tm.scanTopics())

	assert.Equal(t, []string{"notes"}, tm.ListTopics())
}

func TestGetTopic(t *testing.T) {
	tm := New(testFS(), Options{})
	require.NoError(t, tm.scanTopics())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"provisioning", "provisioning", true},
		{"timeout", "option-timeout", true},
		{"--timeout", "option-timeout", true},
		{"-timeout", "option-timeout", true},
		{"option-timeout", "option-timeout", true},
		{"missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, ok := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, ok)
			if tt.exists {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestWriteIndex(t *testing.T) {
	tm := New(testFS(), Options{})
	require.NoError(t, tm.scanTopics())

	var buf bytes.Buffer
	tm.WriteIndex(&buf, "runtimeup")

	out := buf.String()
	assert.Contains(t, out, "General topics:\n  config\n  provisioning\n")
	assert.Contains(t, out, "Option topics:\n  --timeout\n")
	assert.Contains(t, out, "Use 'runtimeup help <topic>'")
}

func TestWriteIndex_Empty(t *testing.T) {
	tm := New(fstest.MapFS{}, Options{})
	require.NoError(t, tm.scanTopics())

	var buf bytes.Buffer
	tm.WriteIndex(&buf, "runtimeup")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "testapp", Short: "Test application"}
	root.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Install something",
		Run:   func(cmd *cobra.Command, args []string) {},
	})
	return root
}

func TestInitialize_ShowsTopic(t *testing.T) {
	root := newRoot()
	_, err := Initialize(root, testFS(), Options{})
	require.NoError(t, err)

	root.InitDefaultHelpCmd()
	helpCmd, _, err := root.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help [command or topic]", helpCmd.Use)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"help", "timeout"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "Timeout help", out.String())
}

func TestInitialize_ListsTopics(t *testing.T) {
	root := newRoot()
	_, err := Initialize(root, testFS(), Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Use 'testapp help <topic>'")
}

func TestGlamourRenderer_NonMarkdownPassesThrough(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
}

func TestGlamourRenderer_Markdown(t *testing.T) {
	r := &GlamourRenderer{Style: "notty"}
	out := r.Render("# Title\n\nBody text\n", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "Body text")
}
