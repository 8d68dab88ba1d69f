package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Washing Machine", "Washing Machine"},
		{"leading and trailing", "  AC Unit  ", "AC Unit"},
		{"internal runs", "Samsung   Front\tLoad\n Washer", "Samsung Front Load Washer"},
		{"empty", "", ""},
		{"only whitespace", "   \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTimeSlot(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"09:00 - 11:00", "09:00 - 11:00"},
		{"09:00-11:00", "09:00 - 11:00"},
		{"  17:00   -   19:00 ", "17:00 - 19:00"},
	}

	for _, tt := range tests {
		if got := NormalizeTimeSlot(tt.input); got != tt.want {
			t.Errorf("NormalizeTimeSlot(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
