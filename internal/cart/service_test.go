package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/autoshop/autoshop-api/internal/catalog"
	"github.com/autoshop/autoshop-api/internal/domain"
)

type mockStore struct {
	lines map[string]*Line // by line id
}

func newMockStore() *mockStore { return &mockStore{lines: map[string]*Line{}} }

func (m *mockStore) Find(_ context.Context, userID, productID string) (*Line, error) {
	for _, l := range m.lines {
		if l.UserID == userID && l.ProductID == productID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) Insert(_ context.Context, l *Line) error {
	cp := *l
	m.lines[l.ID] = &cp
	return nil
}

func (m *mockStore) SetQuantity(_ context.Context, lineID string, qty int) error {
	l, ok := m.lines[lineID]
	if !ok {
		return domain.ErrNotFound
	}
	l.Quantity = qty
	return nil
}

func (m *mockStore) List(_ context.Context, userID string) ([]Line, error) {
	var out []Line
	for _, l := range m.lines {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *mockStore) Remove(_ context.Context, userID, lineID string) error {
	l, ok := m.lines[lineID]
	if !ok || l.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.lines, lineID)
	return nil
}

type mockCatalog struct {
	products map[string]*catalog.Product
}

func (m *mockCatalog) Get(_ context.Context, productID string) (*catalog.Product, error) {
	p, ok := m.products[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func price(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newService() (*Service, *mockStore) {
	store := newMockStore()
	cat := &mockCatalog{products: map[string]*catalog.Product{
		"p1": {ID: "p1", Name: "Oil filter", Price: price("19.99"), Stock: 5},
	}}
	return &Service{Store: store, Catalog: cat}, store
}

func TestAdd_MergesQuantities(t *testing.T) {
	svc, store := newService()

	first, _, err := svc.Add(context.Background(), "u1", "p1", 2)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	second, _, err := svc.Add(context.Background(), "u1", "p1", 3)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected one merged line, got two ids %s / %s", first.ID, second.ID)
	}
	if len(store.lines) != 1 {
		t.Errorf("expected 1 stored line, got %d", len(store.lines))
	}
	if second.Quantity != 5 {
		t.Errorf("merged quantity = %d, want 5", second.Quantity)
	}
}

func TestAdd_QuantityBounds(t *testing.T) {
	svc, _ := newService()
	for _, qty := range []int{0, -1, 101} {
		_, _, err := svc.Add(context.Background(), "u1", "p1", qty)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("qty=%d: expected ValidationError, got %v", qty, err)
		}
	}
	// merged total above the cap is tolerated: only the delta is checked
	if _, _, err := svc.Add(context.Background(), "u1", "p1", 100); err != nil {
		t.Fatalf("add 100: %v", err)
	}
	line, _, err := svc.Add(context.Background(), "u1", "p1", 100)
	if err != nil {
		t.Fatalf("second add 100: %v", err)
	}
	if line.Quantity != 200 {
		t.Errorf("merged quantity = %d, want 200", line.Quantity)
	}
}

func TestAdd_UnknownProduct(t *testing.T) {
	svc, _ := newService()
	_, _, err := svc.Add(context.Background(), "u1", "nope", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListViews_Subtotal(t *testing.T) {
	svc, _ := newService()
	if _, _, err := svc.Add(context.Background(), "u1", "p1", 3); err != nil {
		t.Fatal(err)
	}
	views, err := svc.ListViews(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	if got := views[0].Subtotal.StringFixed(2); got != "59.97" {
		t.Errorf("subtotal = %s, want 59.97", got)
	}
}

func TestRemove_ScopedToOwner(t *testing.T) {
	svc, store := newService()
	line, _, err := svc.Add(context.Background(), "u1", "p1", 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Remove(context.Background(), "u2", line.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign remove: expected ErrNotFound, got %v", err)
	}
	if len(store.lines) != 1 {
		t.Fatalf("line removed by wrong user")
	}
	if err := svc.Remove(context.Background(), "u1", line.ID); err != nil {
		t.Errorf("owner remove: %v", err)
	}
	if len(store.lines) != 0 {
		t.Errorf("line not removed")
	}
}
