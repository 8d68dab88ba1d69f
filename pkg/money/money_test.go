package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"100.00", 10000, false},
		{"100", 10000, false},
		{"0.50", 50, false},
		{"0", 0, false},
		{"50.5", 5050, false},
		{"-1.00", 0, true},
		{"1.005", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		piasters int64
		want     string
	}{
		{10000, "100.00"},
		{1500, "15.00"},
		{50, "0.50"},
		{0, "0.00"},
	}

	for _, tt := range tests {
		if got := Format(tt.piasters); got != tt.want {
			t.Errorf("Format(%d) = %s, want %s", tt.piasters, got, tt.want)
		}
	}
}

func TestParseRate(t *testing.T) {
	if _, err := ParseRate("0.15"); err != nil {
		t.Errorf("expected 0.15 to be a valid rate: %v", err)
	}
	if _, err := ParseRate("0"); err != nil {
		t.Errorf("expected 0 to be a valid rate: %v", err)
	}
	if _, err := ParseRate("1"); err != nil {
		t.Errorf("expected 1 to be a valid rate: %v", err)
	}
	if _, err := ParseRate("1.01"); err == nil {
		t.Errorf("expected rate above 1 to be rejected")
	}
	if _, err := ParseRate("-0.1"); err == nil {
		t.Errorf("expected negative rate to be rejected")
	}
}

func TestCommission(t *testing.T) {
	rate := decimal.RequireFromString("0.15")

	// EGP 100.00 at 15% is exactly EGP 15.00.
	if got := Commission(10000, rate); got != 1500 {
		t.Errorf("Commission(10000, 0.15) = %d, want 1500", got)
	}

	// Half-piaster results round away from zero: 0.33 × 0.15 = 0.0495 → 0.05.
	if got := Commission(33, rate); got != 5 {
		t.Errorf("Commission(33, 0.15) = %d, want 5", got)
	}

	if got := Commission(10000, decimal.Zero); got != 0 {
		t.Errorf("Commission at zero rate = %d, want 0", got)
	}

	if got := Commission(10000, decimal.NewFromInt(1)); got != 10000 {
		t.Errorf("Commission at full rate = %d, want 10000", got)
	}
}
