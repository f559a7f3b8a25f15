package entity

// Symbolic severity levels emitted by the backend.
const (
	SeverityError   = "SEVERITY_ERROR"
	SeverityWarning = "SEVERITY_WARNING"
	SeverityInfo    = "SEVERITY_INFO"
)

// Ordered severity scale.
const (
	SeverityLevelLow    = 1
	SeverityLevelMedium = 2
	SeverityLevelHigh   = 3
)

// SeverityLevel converts a symbolic severity into the ordered numeric scale.
// Anything unrecognized, including the empty string, is Low.
func SeverityLevel(symbol string) int {
	switch symbol {
	case SeverityError:
		return SeverityLevelHigh
	case SeverityWarning:
		return SeverityLevelMedium
	default:
		return SeverityLevelLow
	}
}

// SeverityTier labels a numeric severity for display.
func SeverityTier(level int) string {
	switch {
	case level >= SeverityLevelHigh:
		return "High"
	case level == SeverityLevelMedium:
		return "Medium"
	default:
		return "Low"
	}
}
