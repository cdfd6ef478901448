package runner

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shRunner(opts Options) *ShellRunner {
	opts.Shell = "sh"
	return New(opts)
}

func TestNew_Defaults(t *testing.T) {
	r := New(Options{})
	assert.Equal(t, "bash", r.opts.Shell)
	assert.Equal(t, []string{"-c"}, r.opts.ShellArgs)
	assert.NotNil(t, r.opts.ExecCommand)
	assert.Zero(t, r.opts.Timeout)
}

func TestRunCaptured_MergesOutputInOrder(t *testing.T) {
	r := shRunner(Options{})

	outcome := r.RunCaptured(context.Background(), "echo one; echo two >&2; echo three")

	require.True(t, outcome.ExitedSuccessfully, outcome.FailureReason)
	assert.Equal(t, 0, outcome.ExitCode)
	assert.Equal(t, "one\ntwo\nthree\n", outcome.CapturedText)
	assert.Empty(t, outcome.FailureReason)
}

func TestRunStreamed_DeliversEveryLine(t *testing.T) {
	r := shRunner(Options{})

	var lines []string
	outcome := r.RunStreamed(context.Background(), "echo Configuring; echo Building... >&2; echo done", func(line string) {
		lines = append(lines, line)
	})

	require.True(t, outcome.ExitedSuccessfully, outcome.FailureReason)
	assert.Equal(t, []string{"Configuring", "Building...", "done"}, lines)
	assert.Equal(t, "Configuring\nBuilding...\ndone\n", outcome.CapturedText)
}

func TestRunCaptured_NonZeroExit(t *testing.T) {
	r := shRunner(Options{})

	outcome := r.RunCaptured(context.Background(), "echo boom >&2; exit 3")

	assert.False(t, outcome.ExitedSuccessfully)
	assert.Equal(t, 3, outcome.ExitCode)
	assert.Contains(t, outcome.FailureReason, "exit status 3")
	assert.Contains(t, outcome.FailureReason, "boom")
}

func TestRunCaptured_UnknownCommand(t *testing.T) {
	r := shRunner(Options{})

	outcome := r.RunCaptured(context.Background(), "runtimeup-no-such-command-xyz")

	assert.False(t, outcome.ExitedSuccessfully)
	assert.Equal(t, 127, outcome.ExitCode)
	assert.Contains(t, outcome.FailureReason, "runtimeup-no-such-command-xyz")
}

func TestRunCaptured_SpawnFailure(t *testing.T) {
	r := New(Options{Shell: "/nonexistent/shell"})

	outcome := r.RunCaptured(context.Background(), "true")

	assert.False(t, outcome.ExitedSuccessfully)
	assert.Equal(t, -1, outcome.ExitCode)
	assert.Contains(t, outcome.FailureReason, "failed to start")
}

func TestRunCaptured_Timeout(t *testing.T) {
	r := shRunner(Options{Timeout: 100 * time.Millisecond})

	start := time.Now()
	outcome := r.RunCaptured(context.Background(), "exec sleep 5")

	assert.False(t, outcome.ExitedSuccessfully)
	assert.Contains(t, outcome.FailureReason, "timed out")
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestRunCaptured_CancelledContext(t *testing.T) {
	r := shRunner(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := r.RunCaptured(ctx, "echo never")

	assert.False(t, outcome.ExitedSuccessfully)
	assert.NotContains(t, outcome.CapturedText, "never")
}

func TestRunCaptured_EnvAndDir(t *testing.T) {
	dir := t.TempDir()
	r := shRunner(Options{Env: []string{"RUNTIMEUP_TEST_VALUE=42"}, Dir: dir})

	outcome := r.RunCaptured(context.Background(), "echo $RUNTIMEUP_TEST_VALUE; pwd")

	require.True(t, outcome.ExitedSuccessfully, outcome.FailureReason)
	lines := strings.Split(strings.TrimSpace(outcome.CapturedText), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "42", lines[0])
	assert.Contains(t, lines[1], strings.TrimPrefix(dir, "/private"))
}

func TestRunCaptured_LongLine(t *testing.T) {
	r := shRunner(Options{})

	outcome := r.RunCaptured(context.Background(), "head -c 200000 /dev/zero | tr '\\000' a; echo")

	require.True(t, outcome.ExitedSuccessfully, outcome.FailureReason)
	assert.Len(t, outcome.CapturedText, 200001)
}

func TestRun_UsesInjectedExecCommand(t *testing.T) {
	var gotName string
	var gotArgs []string
	r := New(Options{
		Shell: "sh",
		ExecCommand: func(ctx context.Context, name string, arg ...string) *exec.Cmd {
			gotName = name
			gotArgs = arg
			return exec.CommandContext(ctx, "sh", "-c", "echo stubbed")
		},
	})

	outcome := r.RunCaptured(context.Background(), "phpbrew -v")

	require.True(t, outcome.ExitedSuccessfully)
	assert.Equal(t, "sh", gotName)
	assert.Equal(t, []string{"-c", "phpbrew -v"}, gotArgs)
	assert.Equal(t, "stubbed\n", outcome.CapturedText)
}
