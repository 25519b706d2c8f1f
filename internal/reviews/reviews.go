// Package reviews implements product reviews: one user can leave any number
// of reviews, edits and deletes are scoped to the author.
package reviews

import (
	"time"

	"github.com/autoshop/autoshop-api/internal/domain"
)

const maxTextLen = 2000

type Review struct {
	ID        string
	UserID    string
	ProductID string
	Rating    int // 1..5
	Text      string
	CreatedAt time.Time
}

func Validate(rating int, text string) error {
	if rating < 1 || rating > 5 {
		return domain.Validationf("rating must be between 1 and 5")
	}
	if len(text) > maxTextLen {
		return domain.Validationf("review text must be at most %d characters", maxTextLen)
	}
	return nil
}
