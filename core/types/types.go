// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

// SystemKind identifies which water-reuse system is being estimated
type SystemKind string

const (
	SystemRainwater SystemKind = "rainwater"
	SystemHVAC      SystemKind = "hvac"
)

// String returns the string representation of the system
func (s SystemKind) String() string {
	return string(s)
}

// IsValid checks if the system is a known system
func (s SystemKind) IsValid() bool {
	switch s {
	case SystemRainwater, SystemHVAC:
		return true
	default:
		return false
	}
}

// SystemKinds lists every supported system
func SystemKinds() []SystemKind {
	return []SystemKind{SystemRainwater, SystemHVAC}
}
