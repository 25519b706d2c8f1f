package reviews

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/autoshop/autoshop-api/internal/domain"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Insert(ctx context.Context, rv *Review) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO reviews(id, user_id, product_id, rating, text, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		rv.ID, rv.UserID, rv.ProductID, rv.Rating, rv.Text, rv.CreatedAt)
	return err
}

func (r *Repo) ListForProduct(ctx context.Context, productID string) ([]Review, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, user_id, product_id, rating, text, created_at
		FROM reviews WHERE product_id=$1 ORDER BY created_at DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.Rating, &rv.Text, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Update rewrites rating/text if the review belongs to userID and returns the
// stored row. Reviews of other authors look absent.
func (r *Repo) Update(ctx context.Context, userID, reviewID string, rating int, text string) (*Review, error) {
	var rv Review
	err := r.DB.QueryRow(ctx, `
		UPDATE reviews SET rating=$3, text=$4 WHERE id=$1 AND user_id=$2
		RETURNING id, user_id, product_id, rating, text, created_at`,
		reviewID, userID, rating, text).
		Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.Rating, &rv.Text, &rv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *Repo) Delete(ctx context.Context, userID, reviewID string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM reviews WHERE id=$1 AND user_id=$2`, reviewID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
