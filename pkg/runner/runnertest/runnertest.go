// Package runnertest provides a testify mock of runner.Runner.
package runnertest

import (
	"context"
	"strconv"

	"github.com/arthur-debert/runtimeup/pkg/types"
	"github.com/stretchr/testify/mock"
)

// Runner is a mock runner.Runner
type Runner struct {
	mock.Mock
}

func (m *Runner) RunCaptured(ctx context.Context, command string) types.ProcessOutcome {
	args := m.Called(ctx, command)
	return args.Get(0).(types.ProcessOutcome)
}

func (m *Runner) RunStreamed(ctx context.Context, command string, onLine types.LineHandler) types.ProcessOutcome {
	args := m.Called(ctx, command, onLine)
	return args.Get(0).(types.ProcessOutcome)
}

// Success is a successful outcome with the given output
func Success(output string) types.ProcessOutcome {
	return types.ProcessOutcome{ExitedSuccessfully: true, CapturedText: output}
}

// Failure is a failed outcome. The reason mirrors what the real runner reports.
func Failure(exitCode int, output string) types.ProcessOutcome {
	return types.ProcessOutcome{
		ExitCode:      exitCode,
		CapturedText:  output,
		FailureReason: "exit status " + strconv.Itoa(exitCode) + "\n" + output,
	}
}

// Emit returns a Run function that feeds lines to the streamed callback
func Emit(lines ...string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		onLine := args.Get(2).(types.LineHandler)
		for _, l := range lines {
			onLine(l)
		}
	}
}

// CallCount returns how many times method was invoked
func (m *Runner) CallCount(method string) int {
	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}
