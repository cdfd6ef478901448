// Package runner executes shell commands as supervised subprocesses.
//
// Stdout and stderr share a single pipe so lines reach the caller in the
// order the child wrote them. Line callbacks run on the caller's goroutine.
package runner

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/runtimeup/pkg/logging"
	"github.com/arthur-debert/runtimeup/pkg/types"
	"github.com/rs/zerolog"
)

const (
	DefaultShell = "bash"

	// maxLineSize bounds a single output line. Compiler output can be long.
	maxLineSize = 1024 * 1024

	// failureTailLines is how much trailing output goes into FailureReason
	failureTailLines = 20

	// waitDelay caps how long Wait blocks on inherited pipes after the
	// process was killed.
	waitDelay = 2 * time.Second
)

// ExecCommandFunc creates the exec.Cmd for a run. Tests replace it.
type ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

// Runner runs one shell command at a time
type Runner interface {
	// RunCaptured runs command to completion and returns its merged output
	RunCaptured(ctx context.Context, command string) types.ProcessOutcome

	// RunStreamed is RunCaptured that also hands every line to onLine as it arrives
	RunStreamed(ctx context.Context, command string, onLine types.LineHandler) types.ProcessOutcome
}

// Options configure a ShellRunner
type Options struct {
	// Shell runs the command, "bash" by default
	Shell string

	// ShellArgs precede the command, {"-c"} by default
	ShellArgs []string

	// Timeout kills the process after the given duration. Zero disables it.
	Timeout time.Duration

	// Env is appended to the current environment
	Env []string

	// Dir is the working directory, the current one when empty
	Dir string

	ExecCommand ExecCommandFunc
}

// ShellRunner is the Runner backed by real subprocesses
type ShellRunner struct {
	opts   Options
	logger zerolog.Logger
}

// New returns a ShellRunner with defaults filled in
func New(opts Options) *ShellRunner {
	if opts.Shell == "" {
		opts.Shell = DefaultShell
	}
	if len(opts.ShellArgs) == 0 {
		opts.ShellArgs = []string{"-c"}
	}
	if opts.ExecCommand == nil {
		opts.ExecCommand = exec.CommandContext
	}
	return &ShellRunner{
		opts:   opts,
		logger: logging.GetLogger("runner"),
	}
}

// RunCaptured implements Runner
func (r *ShellRunner) RunCaptured(ctx context.Context, command string) types.ProcessOutcome {
	return r.run(ctx, command, nil)
}

// RunStreamed implements Runner
func (r *ShellRunner) RunStreamed(ctx context.Context, command string, onLine types.LineHandler) types.ProcessOutcome {
	return r.run(ctx, command, onLine)
}

func (r *ShellRunner) run(ctx context.Context, command string, onLine types.LineHandler) types.ProcessOutcome {
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	logging.LogCommand(r.logger, r.opts.Shell, command)
	start := time.Now()

	args := append(append([]string{}, r.opts.ShellArgs...), command)
	cmd := r.opts.ExecCommand(ctx, r.opts.Shell, args...)
	cmd.Dir = r.opts.Dir
	if len(r.opts.Env) > 0 {
		cmd.Env = append(os.Environ(), r.opts.Env...)
	}
	cmd.WaitDelay = waitDelay

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		_ = pw.Close()
		r.logger.Error().Err(err).Str("shell", r.opts.Shell).Msg("Failed to start process")
		return types.ProcessOutcome{
			ExitCode:      -1,
			FailureReason: fmt.Sprintf("failed to start %s: %v", r.opts.Shell, err),
		}
	}

	waitErr := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		_ = pw.Close()
		waitErr <- err
	}()

	var captured strings.Builder
	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		captured.WriteString(line)
		captured.WriteByte('\n')
		if onLine != nil {
			onLine(line)
		}
	}
	if err := scanner.Err(); err != nil {
		r.logger.Warn().Err(err).Msg("Stopped reading process output")
		_, _ = io.Copy(io.Discard, pr)
	}

	err := <-waitErr
	outcome := types.ProcessOutcome{
		CapturedText: captured.String(),
		ExitCode:     cmd.ProcessState.ExitCode(),
	}

	logger := r.logger.With().Dur("duration", time.Since(start)).Int("exit_code", outcome.ExitCode).Logger()
	if err == nil {
		outcome.ExitedSuccessfully = true
		logger.Debug().Msg("Process finished")
		return outcome
	}

	outcome.FailureReason = failureReason(ctx, err, r.opts.Timeout, outcome.CapturedText)
	logger.Debug().Err(err).Msg("Process failed")
	return outcome
}

func failureReason(ctx context.Context, err error, timeout time.Duration, output string) string {
	reason := err.Error()
	switch {
	case stderrors.Is(ctx.Err(), context.DeadlineExceeded) && timeout > 0:
		reason = fmt.Sprintf("timed out after %s (%v)", timeout, err)
	case ctx.Err() != nil:
		reason = fmt.Sprintf("cancelled: %v (%v)", ctx.Err(), err)
	}

	if tail := logging.Tail(output, failureTailLines); tail != "" {
		reason += "\n" + tail
	}
	return reason
}
