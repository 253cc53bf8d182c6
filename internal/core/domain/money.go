package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount as Philippine pesos the way the app shows
// them: a literal "P" prefix (not "PHP"), comma grouping, two decimals.
// Example: P10,000.00
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatDateTime renders timestamps as "MMM dd, yyyy HH:mm:ss", e.g.
// "Aug 30, 2026 14:05:09", matching the app's confirmation screens.
func FormatDateTime(t time.Time) string {
	return t.Format("Jan 02, 2006 15:04:05")
}
