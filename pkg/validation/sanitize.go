package validation

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-carprice/pkg/vehicle"
)

var maxMileageText = strconv.Itoa(vehicle.MaxMileage)

// SanitizeMileage cleans a mileage value as it is typed: every rune that is
// not a digit or comma is dropped, then the commas are dropped. Values above
// the mileage ceiling clamp to exactly "500000". It never rejects input.
func SanitizeMileage(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if exceedsMaxMileage(digits) {
		return maxMileageText
	}
	return digits
}

func exceedsMaxMileage(digits string) bool {
	significant := strings.TrimLeft(digits, "0")
	if len(significant) > len(maxMileageText) {
		return true
	}
	if significant == "" {
		return false
	}
	value, err := strconv.Atoi(significant)
	if err != nil {
		return true
	}
	return value > vehicle.MaxMileage
}
