package phases

import (
	"testing"

	"github.com/arthur-debert/runtimeup/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	build := NewBuildClassifier()
	ext := NewExtensionClassifier()

	tests := []struct {
		name       string
		classifier Classifier
		line       string
		want       types.Phase
	}{
		{"build configuring", build, "===> Configuring...", types.PhaseConfiguring},
		{"build building", build, "Building...", types.PhaseBuilding},
		{"build building without dots", build, "Building php", types.PhaseNone},
		{"build installing", build, "Installing...", types.PhaseInstalling},
		{"build noise", build, "checking for gcc... yes", types.PhaseNone},
		{"ext configuring", ext, "===> Configuring gd", types.PhaseConfiguring},
		{"ext building", ext, "===> Building...", types.PhaseBuilding},
		{"ext installing", ext, "===> Running make install", types.PhaseInstalling},
		{"ext installing words", ext, "Installing shared extensions", types.PhaseNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.classifier.Classify(tt.line))
		})
	}
}

func TestTracker_SuppressesConsecutiveDuplicates(t *testing.T) {
	var notified []types.Phase
	tracker := NewTracker(NewExtensionClassifier(), func(p types.Phase) {
		notified = append(notified, p)
	})

	for _, line := range []string{"foo", "Configuring x", "Configuring y", "Building now"} {
		tracker.Feed(line)
	}

	want := []types.Phase{types.PhaseConfiguring, types.PhaseBuilding}
	assert.Equal(t, want, notified)
	assert.Equal(t, want, tracker.Transitions())
	assert.Equal(t, types.PhaseBuilding, tracker.Current())
}

func TestTracker_ReenteringPhaseNotifiesAgain(t *testing.T) {
	tracker := NewTracker(NewExtensionClassifier(), nil)
	handle := tracker.LineHandler()

	handle("Configuring a")
	handle("Building a")
	handle("Configuring b")

	assert.Equal(t, []types.Phase{types.PhaseConfiguring, types.PhaseBuilding, types.PhaseConfiguring}, tracker.Transitions())
}

func TestTracker_NoMatches(t *testing.T) {
	tracker := NewTracker(NewBuildClassifier(), nil)
	assert.False(t, tracker.Feed("nothing here"))
	assert.Equal(t, types.PhaseNone, tracker.Current())
	assert.Empty(t, tracker.Transitions())
}
