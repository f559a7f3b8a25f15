package entity

import "testing"

func TestSeverityLevel(t *testing.T) {
	tests := []struct {
		symbol string
		want   int
	}{
		{SeverityError, 3},
		{SeverityWarning, 2},
		{SeverityInfo, 1},
		{"SEVERITY_UNSPECIFIED", 1},
		{"error", 1},
		{"", 1},
	}
	for _, tt := range tests {
		got := SeverityLevel(tt.symbol)
		if got != tt.want {
			t.Errorf("SeverityLevel(%q) = %d, want %d", tt.symbol, got, tt.want)
		}
		// Stable across repeated calls.
		if again := SeverityLevel(tt.symbol); again != got {
			t.Errorf("SeverityLevel(%q) not stable: %d then %d", tt.symbol, got, again)
		}
	}
}

func TestSeverityTier(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{5, "High"},
		{3, "High"},
		{2, "Medium"},
		{1, "Low"},
		{0, "Low"},
		{-1, "Low"},
	}
	for _, tt := range tests {
		if got := SeverityTier(tt.level); got != tt.want {
			t.Errorf("SeverityTier(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestSeverityTier_RoundTripsLevels(t *testing.T) {
	want := map[string]string{
		SeverityError:   "High",
		SeverityWarning: "Medium",
		SeverityInfo:    "Low",
	}
	for symbol, tier := range want {
		if got := SeverityTier(SeverityLevel(symbol)); got != tier {
			t.Errorf("tier for %s = %q, want %q", symbol, got, tier)
		}
	}
}
