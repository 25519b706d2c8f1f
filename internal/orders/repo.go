package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/autoshop/autoshop-api/internal/cart"
	"github.com/autoshop/autoshop-api/internal/catalog"
	"github.com/autoshop/autoshop-api/internal/domain"
	"github.com/autoshop/autoshop-api/internal/inventory"
)

// Repo is the pgx-backed Store. All of createOrder runs on one pgx.Tx; the
// deferred Rollback is a no-op after Commit and the safety net everywhere else.
type Repo struct{ DB *pgxpool.Pool }

var _ Store = (*Repo)(nil)

func (r *Repo) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	pgtx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = pgtx.Rollback(ctx) }()

	if err := fn(&pgTx{tx: pgtx}); err != nil {
		return err
	}
	return pgtx.Commit(ctx)
}

type pgTx struct{ tx pgx.Tx }

func (t *pgTx) CartLines(ctx context.Context, userID string) ([]cart.Line, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT id, user_id, product_id, quantity FROM cart_items WHERE user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cart.Line
	for rows.Next() {
		var l cart.Line
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductID, &l.Quantity); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (t *pgTx) ProductsForUpdate(ctx context.Context, productIDs []string) (map[string]catalog.Product, error) {
	ids := append([]string(nil), productIDs...)
	sort.Strings(ids) // lock rows in a stable order

	rows, err := t.tx.Query(ctx, `
		SELECT id, sku, name, description, price, stock, category_id, created_at, updated_at
		FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]catalog.Product{}
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (t *pgTx) InsertOrder(ctx context.Context, o *Order) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO orders(id, user_id, total, status, created_at)
		VALUES ($1,$2,$3,$4,$5)`,
		o.ID, o.UserID, o.Total, string(o.Status), o.CreatedAt)
	return err
}

func (t *pgTx) InsertLine(ctx context.Context, l *Line) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO order_items(id, order_id, product_id, quantity, price)
		VALUES ($1,$2,$3,$4,$5)`,
		l.ID, l.OrderID, l.ProductID, l.Quantity, l.Price)
	return err
}

func (t *pgTx) ReserveStock(ctx context.Context, productID string, qty int) (int, error) {
	return inventory.ReserveLine(ctx, t.tx, productID, qty)
}

func (t *pgTx) ReleaseStock(ctx context.Context, productID string, qty int) error {
	return inventory.ReleaseLine(ctx, t.tx, productID, qty)
}

func (t *pgTx) DeleteCartLine(ctx context.Context, lineID string) error {
	ct, err := t.tx.Exec(ctx, `DELETE FROM cart_items WHERE id=$1`, lineID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("cart line %s vanished mid-transaction", lineID)
	}
	return nil
}

func (t *pgTx) GetOrderForUpdate(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	err := t.tx.QueryRow(ctx,
		`SELECT id, user_id, total, status, created_at FROM orders WHERE id=$1 FOR UPDATE`,
		orderID).Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Items, err = scanLines(ctx, t.tx, o.ID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (t *pgTx) SetStatus(ctx context.Context, orderID string, st Status) error {
	ct, err := t.tx.Exec(ctx, `UPDATE orders SET status=$2 WHERE id=$1`, orderID, string(st))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// scanLines returns a non-nil slice in line-insertion order.
func scanLines(ctx context.Context, q queryer, orderID string) ([]Line, error) {
	rows, err := q.Query(ctx, `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items WHERE order_id=$1 ORDER BY seq`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Line{}
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.Price); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

func (r *Repo) Get(ctx context.Context, userID, orderID string) (*Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx,
		`SELECT id, user_id, total, status, created_at FROM orders WHERE id=$1 AND user_id=$2`,
		orderID, userID).Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Items, err = scanLines(ctx, r.DB, o.ID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) List(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, user_id, total, status, created_at FROM orders WHERE user_id=$1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Items, err = scanLines(ctx, r.DB, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}
