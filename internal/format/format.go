package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	rupee        = "₹"
	rangeSep     = " — "
	maxFractions = 3
)

// en-IN groups the last three digits, then every two: 1234567 => 12,34,567
var indian = language.MustParse("en-IN")

// Price formats an optional amount in Indian Rupees. A null amount yields "".
// Example: Price(150000) => "₹1,50,000"
func Price(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}
	return INR(v.Decimal)
}

// INR formats amount with the rupee symbol and Indian digit grouping.
// At most three fraction digits are kept; trailing zeros are dropped.
func INR(amount decimal.Decimal) string {
	rounded := amount.Round(maxFractions)
	abs := rounded.Abs()
	// the integer part goes through the locale printer exactly; the fraction
	// stays decimal so no float rounding leaks into the output
	out := message.NewPrinter(indian).Sprint(number.Decimal(abs.IntPart()))
	if _, frac, ok := strings.Cut(abs.String(), "."); ok {
		out += "." + frac
	}
	if rounded.IsNegative() {
		out = "-" + out
	}
	return rupee + out
}

// Range formats a min–max pair, collapsing to a single amount when both are equal.
func Range(min, max decimal.Decimal) string {
	if min.Equal(max) {
		return INR(min)
	}
	return INR(min) + rangeSep + INR(max)
}

// Date formats time in the short form used on the site (en-IN style).
func Date(t time.Time) string {
	return t.Format("2 Jan 2006")
}
