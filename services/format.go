package services

import (
	"fmt"
	"math"
	"strings"
)

// FormatUSD formats an amount as a dollar string with thousands
// grouping and exactly 2 decimal places, e.g. $12,345.68. FOB garment
// quotes are dollar-denominated.
func FormatUSD(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "$" + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every 3 digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}

// Round2 rounds to the 2-decimal display precision used for table
// subtotals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds to the 3-decimal display precision used for the
// per-piece price.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
