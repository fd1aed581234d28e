package utils

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxRunes int
		want     string
	}{
		{name: "shorter than limit", in: "hdl buspro", maxRunes: 20, want: "hdl buspro"},
		{name: "exactly at limit", in: "knx", maxRunes: 3, want: "knx"},
		{name: "truncated", in: "coolautomation", maxRunes: 4, want: "cool..."},
		{name: "zero limit keeps string", in: "matech", maxRunes: 0, want: "matech"},
		{name: "cyrillic not cut mid-rune", in: "кабель knx", maxRunes: 6, want: "кабель..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.maxRunes); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.maxRunes, got, tt.want)
			}
		})
	}
}
