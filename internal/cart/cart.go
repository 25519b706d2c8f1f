// Package cart holds per-user cart lines. A line is unique per
// (user, product): adding the same product again merges quantities.
package cart

import "github.com/shopspring/decimal"

type Line struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int
}

// View is a line joined with its product for cart listings.
type View struct {
	Line     Line
	Name     string
	Price    decimal.Decimal
	Subtotal decimal.Decimal
}

// Quantity bounds enforced on each incoming delta. The merged total of two
// adds is deliberately not re-checked against MaxQty.
const (
	MinQty = 1
	MaxQty = 100
)
