package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID        string
	UserID    string
	Total     decimal.Decimal
	Status    Status // see status.go
	CreatedAt time.Time
	Items     []Line
}

// Line snapshots (product, quantity, unit price) at order-creation time.
// Later catalog price changes never touch it.
type Line struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}
