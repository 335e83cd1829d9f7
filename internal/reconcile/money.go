package reconcile

import (
	"strconv"
	"strings"
)

// Monetary values are stored as decimal strings end to end.  These
// helpers parse them to floats only transiently for arithmetic and
// always re-serialize to a 2-decimal string, so floating point drift
// never accumulates in stored state.

// ParseAmount parses a decimal string.  An empty string is zero, like
// the backend's rendering of unset figures.
func ParseAmount(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	return strconv.ParseFloat(trimmed, 64)
}

// FormatAmount renders a transient float back to a 2-decimal string.
func FormatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

// SumAmounts totals a set of decimal strings.  Unparseable values count
// as zero rather than poisoning the total.
func SumAmounts(values ...string) string {
	var total float64
	for _, value := range values {
		amount, err := ParseAmount(value)
		if err != nil {
			continue
		}
		total += amount
	}
	return FormatAmount(total)
}

// DeltaFromStart computes balance minus starting balance as a decimal
// string.
func DeltaFromStart(balance string, startingBalance string) string {
	current, err := ParseAmount(balance)
	if err != nil {
		current = 0
	}
	start, err := ParseAmount(startingBalance)
	if err != nil {
		start = 0
	}
	return FormatAmount(current - start)
}
