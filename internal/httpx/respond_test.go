package httpx

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/autoshop/autoshop-api/internal/domain"
)

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"empty cart", domain.ErrEmptyCart, 400, "Cart is empty"},
		{"out of stock", &domain.OutOfStockError{ProductID: "A", Requested: 3, Available: 2}, 400, "Insufficient stock for product A"},
		{"validation", domain.Validationf("quantity must be between 1 and 100"), 400, "quantity must be between 1 and 100"},
		{"not found", domain.ErrNotFound, 404, "Not found"},
		{"wrapped not found", errors.Join(errors.New("ctx"), domain.ErrNotFound), 404, "Not found"},
		{"storage fault", errors.New("connection refused"), 500, "internal error"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, zap.NewNop(), c.err)
			if rec.Code != c.code {
				t.Errorf("status = %d, want %d", rec.Code, c.code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("bad body: %v", err)
			}
			if body["error"] != c.message {
				t.Errorf("error = %q, want %q", body["error"], c.message)
			}
		})
	}
}
