// Package sanitizer normalizes the free-text fields a customer types into a
// booking before they are validated and stored.
package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeDeviceType collapses whitespace; case is preserved because device
// names are shown back to technicians as typed ("Samsung Front Load Washer").
func NormalizeDeviceType(deviceType string) string {
	return TrimAndNormalize(deviceType)
}

func NormalizeDescription(description string) string {
	return TrimAndNormalize(description)
}

// NormalizeTimeSlot collapses whitespace around the slot separator so
// "09:00-11:00" and "09:00 - 11:00" compare equal.
func NormalizeTimeSlot(slot string) string {
	slot = TrimAndNormalize(slot)
	slot = strings.ReplaceAll(slot, " - ", "-")
	return strings.ReplaceAll(slot, "-", " - ")
}
