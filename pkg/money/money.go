// Package money handles EGP amounts. Amounts are carried as int64 piasters
// internally and exposed as two-decimal strings ("100.00") on the wire.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Parse converts a decimal EGP string into piasters. Amounts with more than
// two decimal places or a negative sign are rejected.
func Parse(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q cannot be negative", s)
	}

	piasters := d.Mul(hundred)
	if !piasters.IsInteger() {
		return 0, fmt.Errorf("amount %q has sub-piaster precision", s)
	}
	return piasters.IntPart(), nil
}

// MustParse is Parse for trusted inputs such as configuration defaults.
func MustParse(s string) int64 {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Format renders piasters as a two-decimal EGP string.
func Format(piasters int64) string {
	return decimal.New(piasters, -2).StringFixed(2)
}

// ParseRate parses a commission rate and enforces the [0,1] bounds.
func ParseRate(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	if err := ValidateRate(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ValidateRate checks the [0,1] bounds on a commission rate.
func ValidateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("rate %s outside [0,1]", rate)
	}
	return nil
}

// Commission computes fee × rate in piasters, rounded half away from zero to
// the nearest piaster.
func Commission(feePiasters int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(feePiasters).Mul(rate).Round(0).IntPart()
}
