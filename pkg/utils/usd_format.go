// Package utils provides common utility functions for the Brighthouse
// proposal tool.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatUSD formats a dollar amount with thousands separators
// ($12,345 or $12,345.67). Whole amounts drop the cents, matching the
// text the proposal slides expect.
func FormatUSD(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	// Round to cents first so a fraction like .999 carries into the
	// dollar amount instead of being dropped.
	cents := int64(math.Round(amount * 100))
	intPart := cents / 100
	frac := cents % 100

	formatted := FormatThousands(intPart)
	if frac != 0 {
		formatted += fmt.Sprintf(".%02d", frac)
	}

	if negative {
		return "-$" + formatted
	}
	return "$" + formatted
}

// FormatThousands renders an integer with comma grouping (1,234,567).
func FormatThousands(n int64) string {
	negative := n < 0
	if negative {
		n = -n
	}

	s := fmt.Sprintf("%d", n)
	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	out := strings.Join(groups, ",")
	if negative {
		return "-" + out
	}
	return out
}

// FormatKWh renders an energy figure rounded to the nearest kWh with
// comma grouping (12,345 kWh).
func FormatKWh(kwh float64) string {
	return FormatThousands(int64(math.Round(kwh))) + " kWh"
}

// FormatPercent renders a percentage with no decimals (98%).
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(pct)))
}
