package types

// ProcessOutcome is the result of one supervised subprocess invocation.
// It is consumed immediately by the caller and never persisted.
type ProcessOutcome struct {
	ExitedSuccessfully bool
	ExitCode           int

	// CapturedText holds stdout and stderr merged in emission order
	CapturedText string

	// FailureReason is derived from the error text when the process failed
	FailureReason string
}

// LineHandler receives each output line of a streamed process.
type LineHandler func(line string)
