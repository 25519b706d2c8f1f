package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/autoshop/autoshop-api/internal/domain"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Find(ctx context.Context, userID, productID string) (*Line, error) {
	var l Line
	err := r.DB.QueryRow(ctx,
		`SELECT id, user_id, product_id, quantity FROM cart_items WHERE user_id=$1 AND product_id=$2`,
		userID, productID).Scan(&l.ID, &l.UserID, &l.ProductID, &l.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repo) Insert(ctx context.Context, l *Line) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO cart_items(id, user_id, product_id, quantity) VALUES ($1,$2,$3,$4)`,
		l.ID, l.UserID, l.ProductID, l.Quantity)
	return err
}

func (r *Repo) SetQuantity(ctx context.Context, lineID string, qty int) error {
	ct, err := r.DB.Exec(ctx, `UPDATE cart_items SET quantity=$2 WHERE id=$1`, lineID, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns the user's lines. No ordering is guaranteed.
func (r *Repo) List(ctx context.Context, userID string) ([]Line, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, user_id, product_id, quantity FROM cart_items WHERE user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductID, &l.Quantity); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Remove deletes a line owned by userID. Lines belonging to other users are
// indistinguishable from absent ones.
func (r *Repo) Remove(ctx context.Context, userID, lineID string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE id=$1 AND user_id=$2`, lineID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
