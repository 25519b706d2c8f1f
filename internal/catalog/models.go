package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Available reports whether at least one unit is in stock.
func (p Product) Available() bool { return p.Stock > 0 }

type Category struct {
	ID          string
	Name        string
	Description string
}
