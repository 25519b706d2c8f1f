package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Handlers map these to HTTP codes,
// nothing in here is fatal to the process.
var (
	ErrNotFound  = errors.New("not found")
	ErrEmptyCart = errors.New("Cart is empty")
)

// ValidationError marks input that is out of domain (bad quantity, bad price,
// malformed fields). Always a client error.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// OutOfStockError is returned when a reservation asks for more units than the
// product has left. Requested/Available are filled in where known.
type OutOfStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for product %s", e.ProductID)
}
