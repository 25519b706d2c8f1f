// Package inventory owns product stock movements. Reserve/Release hold the
// arithmetic and its validation; ReserveLine/ReleaseLine apply the same rules
// against the store inside a caller-owned transaction.
package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/autoshop/autoshop-api/internal/domain"
)

// Reserve decrements stock by qty and returns the new stock value.
// qty <= 0 is a validation error, stock < qty is out of stock.
func Reserve(productID string, stock, qty int) (int, error) {
	if qty <= 0 {
		return stock, domain.Validationf("quantity must be positive")
	}
	if stock < qty {
		return stock, &domain.OutOfStockError{ProductID: productID, Requested: qty, Available: stock}
	}
	return stock - qty, nil
}

// Release returns stock incremented by qty. Non-positive qty is a no-op:
// release compensates a failed or cancelled reservation and must never
// turn into a hidden decrement.
func Release(stock, qty int) int {
	if qty <= 0 {
		return stock
	}
	return stock + qty
}

// Tx is the slice of pgx.Tx the ledger needs.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ReserveLine conditionally decrements stock inside tx and returns the new
// stock value. The WHERE stock >= qty guard re-validates at write time, so a
// racing transaction cannot push stock negative no matter what the earlier
// pre-check read.
func ReserveLine(ctx context.Context, tx Tx, productID string, qty int) (int, error) {
	if qty <= 0 {
		return 0, domain.Validationf("quantity must be positive")
	}
	var left int
	err := tx.QueryRow(ctx,
		`UPDATE products SET stock = stock - $2 WHERE id = $1 AND stock >= $2 RETURNING stock`,
		productID, qty).Scan(&left)
	if errors.Is(err, pgx.ErrNoRows) {
		var avail int
		if err := tx.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&avail); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, domain.Validationf("product %s not found", productID)
			}
			return 0, err
		}
		return avail, &domain.OutOfStockError{ProductID: productID, Requested: qty, Available: avail}
	}
	if err != nil {
		return 0, err
	}
	return left, nil
}

// ReleaseLine increments stock inside tx. No-op for qty <= 0.
func ReleaseLine(ctx context.Context, tx Tx, productID string, qty int) error {
	if qty <= 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `UPDATE products SET stock = stock + $2 WHERE id = $1`, productID, qty)
	return err
}
