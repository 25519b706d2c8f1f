package inventory

import (
	"errors"
	"testing"

	"github.com/autoshop/autoshop-api/internal/domain"
)

func TestReserve(t *testing.T) {
	left, err := Reserve("p1", 5, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if left != 3 {
		t.Errorf("left = %d, want 3", left)
	}

	// down to exactly zero is allowed
	left, err = Reserve("p1", 2, 2)
	if err != nil || left != 0 {
		t.Errorf("left = %d, err = %v, want 0, nil", left, err)
	}
}

func TestReserve_OutOfStock(t *testing.T) {
	left, err := Reserve("p1", 2, 3)
	var oos *domain.OutOfStockError
	if !errors.As(err, &oos) {
		t.Fatalf("expected OutOfStockError, got %v", err)
	}
	if oos.ProductID != "p1" || oos.Requested != 3 || oos.Available != 2 {
		t.Errorf("bad error detail: %+v", oos)
	}
	if left != 2 {
		t.Errorf("stock mutated on failure: %d", left)
	}
}

func TestReserve_NonPositiveQty(t *testing.T) {
	for _, qty := range []int{0, -1} {
		_, err := Reserve("p1", 5, qty)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("qty=%d: expected ValidationError, got %v", qty, err)
		}
	}
}

func TestRelease(t *testing.T) {
	if got := Release(3, 2); got != 5 {
		t.Errorf("Release(3, 2) = %d, want 5", got)
	}
	// non-positive qty is a no-op, never a decrement
	if got := Release(3, 0); got != 3 {
		t.Errorf("Release(3, 0) = %d, want 3", got)
	}
	if got := Release(3, -4); got != 3 {
		t.Errorf("Release(3, -4) = %d, want 3", got)
	}
}
