// Package pricing holds the value helpers shared by the catalog read-model
// and the cart: rating aggregation, discount math and currency formatting.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Rating turns a sum of integer review ratings into the 0-5 display rating
// with one fractional digit. Rounding is half-up on scaled integers so the
// result never depends on float artifacts (14/3 is 4.7, not 4.666…67).
func Rating(sum, count int) float64 {
	if count <= 0 {
		return 0
	}
	tenths := (20*sum + count) / (2 * count)
	return float64(tenths) / 10
}

// DiscountPercent returns the rounded percentage saved against the original
// price, or nil when no discount is active (current >= original). The result
// is clamped to [0,100].
func DiscountPercent(original, current decimal.Decimal) *int {
	if original.Sign() <= 0 || !current.LessThan(original) {
		return nil
	}
	pct := original.Sub(current).Div(original).Mul(hundred).Round(0).IntPart()
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	p := int(pct)
	return &p
}

// FormatCurrency renders a price as a dollar string with thousands
// separators, e.g. "$1,234.50".
func FormatCurrency(v decimal.Decimal) string {
	s := v.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}
