package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Reporter prints user facing progress lines. It implements types.Logger.
type Reporter struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
}

// NewReporter returns a Reporter writing to w. Colour is used only when
// w is a colour capable terminal.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{out: w, color: DetectFormat(w) == FormatTerminal}
}

// NewPlainReporter returns a Reporter that never styles its output
func NewPlainReporter(w io.Writer) *Reporter {
	return &Reporter{out: w}
}

// Info implements types.Logger
func (r *Reporter) Info(msg string) {
	r.write(infoPrefix.Sprint("•"), "", msg, nil)
}

// Warn implements types.Logger
func (r *Reporter) Warn(msg string) {
	r.write(warnPrefix.Sprint("!"), "Warning: ", msg, nil)
}

// Error implements types.Logger. Each detail is printed on its own
// indented line.
func (r *Reporter) Error(msg string, detail ...string) {
	r.write(errorPrefix.Sprint(" ERROR "), "Error: ", msg, detail)
}

func (r *Reporter) write(styledPrefix, plainPrefix, msg string, details []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.color {
		_, _ = fmt.Fprintf(r.out, "%s %s\n", styledPrefix, msg)
	} else {
		_, _ = fmt.Fprintf(r.out, "%s%s\n", plainPrefix, msg)
	}

	for _, d := range details {
		for _, line := range strings.Split(strings.TrimRight(d, "\n"), "\n") {
			if line == "" {
				continue
			}
			if r.color {
				line = detailStyle.Sprint(line)
			}
			_, _ = fmt.Fprintf(r.out, "    %s\n", line)
		}
	}
}

// Entry is one message captured by a Recorder
type Entry struct {
	Level   string
	Message string
	Details []string
}

// Recorder is a types.Logger keeping every message in memory
type Recorder struct {
	mu      sync.Mutex
	Entries []Entry
}

// NewRecorder returns an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Info(msg string)                    { r.add("info", msg, nil) }
func (r *Recorder) Warn(msg string)                    { r.add("warn", msg, nil) }
func (r *Recorder) Error(msg string, detail ...string) { r.add("error", msg, detail) }

func (r *Recorder) add(level, msg string, details []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, Entry{Level: level, Message: msg, Details: details})
}

// Messages returns the messages logged at level, in order
func (r *Recorder) Messages(level string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.Entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}
