package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/autoshop/autoshop-api/internal/domain"
	"github.com/autoshop/autoshop-api/internal/money"
)

// Service turns carts into orders and compensates cancelled ones. Pure
// arithmetic lives in internal/money and internal/inventory; the service
// sequences it inside a Store transaction.
type Service struct {
	Store Store
	Log   *zap.Logger
}

// CreateOrder converts the user's cart into a placed order.
//
// The whole sequence - stock pre-check, every reservation, every line write,
// every cart-line delete - is one store transaction. A failure anywhere
// leaves stock, cart and orders exactly as they were.
func (s *Service) CreateOrder(ctx context.Context, userID string) (*Order, error) {
	var out *Order
	err := s.Store.WithinTx(ctx, func(tx Tx) error {
		lines, err := tx.CartLines(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}

		ids := make([]string, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.ProductID)
		}
		products, err := tx.ProductsForUpdate(ctx, ids)
		if err != nil {
			return err
		}

		// All-or-nothing pre-check before any mutation. Cart data feeding a
		// new order line is rejected outright when malformed, unlike the
		// tolerant RecalcTotal path.
		mlines := make([]money.Line, 0, len(lines))
		for _, l := range lines {
			p, ok := products[l.ProductID]
			if !ok {
				return domain.Validationf("product %s not found", l.ProductID)
			}
			if l.Quantity < 1 {
				return domain.Validationf("invalid quantity for product %s", l.ProductID)
			}
			if p.Price.IsNegative() {
				return domain.Validationf("invalid price for product %s", l.ProductID)
			}
			if p.Stock < l.Quantity {
				return &domain.OutOfStockError{ProductID: l.ProductID, Requested: l.Quantity, Available: p.Stock}
			}
			mlines = append(mlines, money.Line{Price: p.Price, Qty: l.Quantity})
		}

		o := &Order{
			ID:        uuid.NewString(),
			UserID:    userID,
			Total:     money.OrderTotal(mlines),
			Status:    StatusPlaced,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.InsertOrder(ctx, o); err != nil {
			return err
		}

		for _, cl := range lines {
			p := products[cl.ProductID]
			// The store re-validates stock at write time; a concurrent order
			// that raced past the pre-check fails here and everything rolls back.
			if _, err := tx.ReserveStock(ctx, cl.ProductID, cl.Quantity); err != nil {
				return err
			}
			ol := &Line{
				ID:        uuid.NewString(),
				OrderID:   o.ID,
				ProductID: cl.ProductID,
				Quantity:  cl.Quantity,
				Price:     money.Round2(p.Price),
			}
			if err := tx.InsertLine(ctx, ol); err != nil {
				return err
			}
			if err := tx.DeleteCartLine(ctx, cl.ID); err != nil {
				return err
			}
			o.Items = append(o.Items, *ol)
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info("order placed",
		zap.String("order_id", out.ID),
		zap.String("user_id", userID),
		zap.String("total", out.Total.StringFixed(2)),
		zap.Int("lines", len(out.Items)))
	return out, nil
}

// CancelOrder releases every reserved line of a placed order and moves it to
// cancelled, atomically. Cancelling an already-cancelled order is a no-op so
// redelivered cancellation events stay harmless.
func (s *Service) CancelOrder(ctx context.Context, orderID string) (*Order, error) {
	var out *Order
	err := s.Store.WithinTx(ctx, func(tx Tx) error {
		o, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status == StatusCancelled {
			out = o
			return nil
		}
		if !CanTransition(o.Status, StatusCancelled) {
			return domain.Validationf("order %s cannot be cancelled from status %s", orderID, o.Status)
		}
		for _, l := range o.Items {
			if err := tx.ReleaseStock(ctx, l.ProductID, l.Quantity); err != nil {
				return err
			}
		}
		if err := tx.SetStatus(ctx, o.ID, StatusCancelled); err != nil {
			return err
		}
		o.Status = StatusCancelled
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RecalcTotal recomputes an order's total from its stored lines. Unlike order
// creation, malformed line data is skipped with a warning: a dirty row must
// not make an existing order unreadable.
func (s *Service) RecalcTotal(o *Order) decimal.Decimal {
	mlines := make([]money.Line, 0, len(o.Items))
	for _, l := range o.Items {
		if l.Quantity < 1 || l.Price.IsNegative() {
			s.Log.Warn("bad order line data, skipping",
				zap.String("order_id", o.ID),
				zap.String("product_id", l.ProductID),
				zap.Int("quantity", l.Quantity),
				zap.String("price", l.Price.String()))
			continue
		}
		mlines = append(mlines, money.Line{Price: l.Price, Qty: l.Quantity})
	}
	o.Total = money.OrderTotal(mlines)
	return o.Total
}

// GetOrder returns the order if it belongs to userID.
func (s *Service) GetOrder(ctx context.Context, userID, orderID string) (*Order, error) {
	return s.Store.Get(ctx, userID, orderID)
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]Order, error) {
	return s.Store.List(ctx, userID)
}
