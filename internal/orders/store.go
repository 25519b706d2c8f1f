package orders

import (
	"context"

	"github.com/autoshop/autoshop-api/internal/cart"
	"github.com/autoshop/autoshop-api/internal/catalog"
)

// Tx is the transactional surface order placement runs against. Every method
// operates inside one store transaction: either the whole createOrder/cancel
// sequence commits or none of it does.
type Tx interface {
	// CartLines returns the user's cart lines, order unspecified.
	CartLines(ctx context.Context, userID string) ([]cart.Line, error)
	// ProductsForUpdate loads and locks the given products for the rest of
	// the transaction. Missing ids are simply absent from the map.
	ProductsForUpdate(ctx context.Context, productIDs []string) (map[string]catalog.Product, error)
	InsertOrder(ctx context.Context, o *Order) error
	InsertLine(ctx context.Context, l *Line) error
	// ReserveStock decrements stock with re-validation at write time and
	// returns the remaining stock. Fails with OutOfStockError instead of
	// ever going negative.
	ReserveStock(ctx context.Context, productID string, qty int) (int, error)
	ReleaseStock(ctx context.Context, productID string, qty int) error
	DeleteCartLine(ctx context.Context, lineID string) error
	// GetOrderForUpdate loads an order with its lines and locks the row.
	// Not user-scoped: used by internal compensation, not by the API.
	GetOrderForUpdate(ctx context.Context, orderID string) (*Order, error)
	SetStatus(ctx context.Context, orderID string, st Status) error
}

type Store interface {
	// WithinTx runs fn inside a transaction, committing on nil and rolling
	// back on error or panic.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error

	// User-scoped reads. Orders owned by other users look absent.
	Get(ctx context.Context, userID, orderID string) (*Order, error)
	List(ctx context.Context, userID string) ([]Order, error)
}
