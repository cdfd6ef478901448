package types

// Phase is a coarse progress state derived from subprocess output
type Phase string

const (
	PhaseNone        Phase = ""
	PhaseConfiguring Phase = "configuring"
	PhaseBuilding    Phase = "building"
	PhaseInstalling  Phase = "installing"
)

// Label returns a capitalized, display-ready name for the phase
func (p Phase) Label() string {
	switch p {
	case PhaseConfiguring:
		return "Configuring"
	case PhaseBuilding:
		return "Building"
	case PhaseInstalling:
		return "Installing"
	default:
		return ""
	}
}
