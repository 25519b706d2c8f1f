package orders

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusCreated, StatusPlaced},
		{StatusCreated, StatusCancelled},
		{StatusPlaced, StatusShipped},
		{StatusPlaced, StatusCancelled},
	}
	for _, c := range allowed {
		if !CanTransition(c.from, c.to) {
			t.Errorf("%s -> %s should be allowed", c.from, c.to)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusShipped, StatusCancelled},
		{StatusCancelled, StatusPlaced},
		{StatusPlaced, StatusCreated},
		{StatusShipped, StatusPlaced},
		{Status("bogus"), StatusPlaced},
	}
	for _, c := range denied {
		if CanTransition(c.from, c.to) {
			t.Errorf("%s -> %s should be denied", c.from, c.to)
		}
	}
}
