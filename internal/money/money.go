// Package money implements fixed-point monetary arithmetic. All amounts are
// quantized to 2 fractional digits with round-half-up; binary floats never
// touch a price or a total.
package money

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Round2 quantizes to 2 fractional digits, rounding half up.
// decimal.Round rounds half away from zero, which is half-up for the
// non-negative amounts money deals in.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineSubtotal is round2(price * qty). The price is normalized to 2 digits
// before multiplying, mirroring how prices are quantized on the way in.
func LineSubtotal(price decimal.Decimal, qty int) decimal.Decimal {
	return Round2(Round2(price).Mul(decimal.NewFromInt(int64(qty))))
}

// Line is a (price, quantity) pair as fed to OrderTotal.
type Line struct {
	Price decimal.Decimal
	Qty   int
}

// OrderTotal sums line subtotals in the given sequence order. With decimal
// arithmetic the order carries no rounding drift; it is kept for
// reproducibility anyway.
func OrderTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineSubtotal(l.Price, l.Qty))
	}
	return Round2(total)
}

// Number renders an amount as a JSON number with exactly 2 digits.
func Number(d decimal.Decimal) json.Number {
	return json.Number(Round2(d).StringFixed(2))
}
