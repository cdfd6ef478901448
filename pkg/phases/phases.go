// Package phases turns raw build output into coarse progress phases.
package phases

import (
	"strings"

	"github.com/arthur-debert/runtimeup/pkg/types"
)

// Marker maps a substring of an output line to a phase
type Marker struct {
	Substring string
	Phase     types.Phase
}

// Classifier assigns phases to output lines. Markers are tried in order,
// first match wins.
type Classifier struct {
	Markers []Marker
}

// BuildMarkers classify the output of "install version"
var BuildMarkers = []Marker{
	{Substring: "Configuring", Phase: types.PhaseConfiguring},
	{Substring: "Building...", Phase: types.PhaseBuilding},
	{Substring: "Installing...", Phase: types.PhaseInstalling},
}

// ExtensionMarkers classify the output of "install extension"
var ExtensionMarkers = []Marker{
	{Substring: "Configuring", Phase: types.PhaseConfiguring},
	{Substring: "Building", Phase: types.PhaseBuilding},
	{Substring: "Running make install", Phase: types.PhaseInstalling},
}

// NewBuildClassifier returns a classifier for runtime builds
func NewBuildClassifier() Classifier {
	return Classifier{Markers: BuildMarkers}
}

// NewExtensionClassifier returns a classifier for extension installs
func NewExtensionClassifier() Classifier {
	return Classifier{Markers: ExtensionMarkers}
}

// Classify returns the phase for line, or PhaseNone
func (c Classifier) Classify(line string) types.Phase {
	for _, m := range c.Markers {
		if strings.Contains(line, m.Substring) {
			return m.Phase
		}
	}
	return types.PhaseNone
}

// Tracker follows the current phase of one subprocess and calls OnChange
// only when the phase actually changes.
type Tracker struct {
	classifier  Classifier
	current     types.Phase
	transitions []types.Phase
	onChange    func(types.Phase)
}

// NewTracker returns a tracker starting in PhaseNone. onChange may be nil.
func NewTracker(c Classifier, onChange func(types.Phase)) *Tracker {
	return &Tracker{classifier: c, onChange: onChange}
}

// Feed classifies one output line. It reports whether a new phase began.
func (t *Tracker) Feed(line string) bool {
	phase := t.classifier.Classify(line)
	if phase == types.PhaseNone || phase == t.current {
		return false
	}
	t.current = phase
	t.transitions = append(t.transitions, phase)
	if t.onChange != nil {
		t.onChange(phase)
	}
	return true
}

// LineHandler adapts Feed to a streamed process callback
func (t *Tracker) LineHandler() types.LineHandler {
	return func(line string) {
		t.Feed(line)
	}
}

// Current returns the latest phase
func (t *Tracker) Current() types.Phase {
	return t.current
}

// Transitions returns every phase entered, in order
func (t *Tracker) Transitions() []types.Phase {
	out := make([]types.Phase, len(t.transitions))
	copy(out, t.transitions)
	return out
}
