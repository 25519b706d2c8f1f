package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/autoshop/autoshop-api/internal/catalog"
	"github.com/autoshop/autoshop-api/internal/domain"
	"github.com/autoshop/autoshop-api/internal/money"
)

// Store is the persistence surface the service needs.
type Store interface {
	Find(ctx context.Context, userID, productID string) (*Line, error)
	Insert(ctx context.Context, l *Line) error
	SetQuantity(ctx context.Context, lineID string, qty int) error
	List(ctx context.Context, userID string) ([]Line, error)
	Remove(ctx context.Context, userID, lineID string) error
}

// CatalogReader looks products up for existence checks and cart views.
type CatalogReader interface {
	Get(ctx context.Context, productID string) (*catalog.Product, error)
}

type Service struct {
	Store   Store
	Catalog CatalogReader
}

// Add merges qty into an existing (user, product) line or creates one.
// qty must be within [MinQty, MaxQty]; only the incoming delta is checked,
// the merged total is not re-capped.
func (s *Service) Add(ctx context.Context, userID, productID string, qty int) (*Line, *catalog.Product, error) {
	if qty < MinQty || qty > MaxQty {
		return nil, nil, domain.Validationf("quantity must be between %d and %d", MinQty, MaxQty)
	}
	product, err := s.Catalog.Get(ctx, productID)
	if err != nil {
		return nil, nil, err
	}

	line, err := s.Store.Find(ctx, userID, productID)
	switch {
	case err == nil:
		line.Quantity += qty
		if err := s.Store.SetQuantity(ctx, line.ID, line.Quantity); err != nil {
			return nil, nil, err
		}
	case errors.Is(err, domain.ErrNotFound):
		line = &Line{ID: uuid.NewString(), UserID: userID, ProductID: productID, Quantity: qty}
		if err := s.Store.Insert(ctx, line); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, err
	}
	return line, product, nil
}

// ListViews returns the user's lines joined with product data and a 2-digit
// subtotal per line.
func (s *Service) ListViews(ctx context.Context, userID string) ([]View, error) {
	lines, err := s.Store.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]View, 0, len(lines))
	for _, l := range lines {
		p, err := s.Catalog.Get(ctx, l.ProductID)
		if err != nil {
			return nil, fmt.Errorf("cart line %s: %w", l.ID, err)
		}
		out = append(out, View{
			Line:     l,
			Name:     p.Name,
			Price:    money.Round2(p.Price),
			Subtotal: money.LineSubtotal(p.Price, l.Quantity),
		})
	}
	return out, nil
}

func (s *Service) Remove(ctx context.Context, userID, lineID string) error {
	return s.Store.Remove(ctx, userID, lineID)
}
