package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerWithFile_Levels(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		SetupLoggerWithFile(tt.verbosity, "")
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func TestSetupLoggerWithFile_CreatesLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "runtimeup.log")

	SetupLoggerWithFile(1, logFile)
	log.Info().Msg("hello from test")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	LogCommand(logger, "bash", "phpbrew list")

	output := buf.String()
	assert.Contains(t, output, "phpbrew list")
	assert.Contains(t, output, "bash")
	assert.Contains(t, output, "Executing command")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "build")
	assert.Contains(t, buf.String(), "Operation started")

	done()
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), "duration")
}

func TestTail(t *testing.T) {
	text := "one\ntwo\n\nthree\nfour\n"

	assert.Equal(t, "three\nfour", Tail(text, 2))
	assert.Equal(t, "one\ntwo\nthree\nfour", Tail(text, 10))
	assert.Equal(t, "", Tail("", 3))
}
