package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLineSubtotal_NoFloatDrift(t *testing.T) {
	cases := []struct {
		price string
		qty   int
		want  string
	}{
		{"19.99", 3, "59.97"},
		{"0.10", 3, "0.30"},
		{"10.00", 2, "20.00"},
		{"3.50", 1, "3.50"},
		{"0.01", 100, "1.00"},
	}
	for _, c := range cases {
		got := LineSubtotal(dec(c.price), c.qty)
		if got.StringFixed(2) != c.want {
			t.Errorf("LineSubtotal(%s, %d) = %s, want %s", c.price, c.qty, got, c.want)
		}
	}
}

func TestRound2_HalfUp(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"2.675", "2.68"},
		{"0.125", "0.13"},
	}
	for _, c := range cases {
		if got := Round2(dec(c.in)); got.StringFixed(2) != c.want {
			t.Errorf("Round2(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestLineSubtotal_NormalizesPriceFirst(t *testing.T) {
	// 1.005 quantizes to 1.01 before multiplying.
	if got := LineSubtotal(dec("1.005"), 2); got.StringFixed(2) != "2.02" {
		t.Errorf("got %s, want 2.02", got)
	}
}

func TestOrderTotal_SumsInSequence(t *testing.T) {
	lines := []Line{
		{Price: dec("10.00"), Qty: 2},
		{Price: dec("3.50"), Qty: 1},
	}
	if got := OrderTotal(lines); got.StringFixed(2) != "23.50" {
		t.Errorf("OrderTotal = %s, want 23.50", got)
	}
	if got := OrderTotal(nil); !got.IsZero() {
		t.Errorf("empty total = %s, want 0", got)
	}
}

func TestNumber_TwoDigits(t *testing.T) {
	if got := Number(dec("23.5")); string(got) != "23.50" {
		t.Errorf("Number = %q, want 23.50", got)
	}
}
