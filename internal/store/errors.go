// internal/store/errors.go
package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("record already exists")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidClaimCode = errors.New("invalid claim code")
	ErrAlreadyClaimed   = errors.New("purchase already claimed")

	// ErrConflict signals a concurrent modification that the current
	// transaction lost. Callers may retry the whole request.
	ErrConflict = errors.New("conflicting concurrent update")
)

type StockKind string

const (
	OutOfStock        StockKind = "out_of_stock"
	InsufficientStock StockKind = "insufficient_stock"
)

// StockError is raised by sale allocation when demand exceeds eligible
// supply for a product. It aborts the enclosing sale transaction.
type StockError struct {
	ProductID uuid.UUID
	Kind      StockKind
	Requested int
	Available int
}

func (e *StockError) Error() string {
	switch e.Kind {
	case OutOfStock:
		return fmt.Sprintf("no available stock for product %s", e.ProductID)
	default:
		return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
			e.ProductID, e.Requested, e.Available)
	}
}
