package types

import "strings"

// OSFamily is the coarse operating system family used for command synthesis
type OSFamily string

const (
	OSFamilyLinux OSFamily = "linux"
	OSFamilyMacOS OSFamily = "macos"
	OSFamilyOther OSFamily = "other"
)

// OSDescriptor is produced once per run by the OS detector.
type OSDescriptor struct {
	Family OSFamily

	// Distribution is the human readable distribution name on Linux, e.g. "Manjaro Linux"
	Distribution string
}

// IsDistribution reports whether the distribution name contains name,
// ignoring case.
func (d OSDescriptor) IsDistribution(name string) bool {
	if d.Distribution == "" || name == "" {
		return false
	}
	return strings.Contains(strings.ToLower(d.Distribution), strings.ToLower(name))
}

// String implements fmt.Stringer
func (d OSDescriptor) String() string {
	if d.Distribution == "" {
		return string(d.Family)
	}
	return string(d.Family) + "/" + d.Distribution
}
