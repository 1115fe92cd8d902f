// internal/services/allocator.go
package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/store"
)

// allocation is one deduction drawn from a single batch.
type allocation struct {
	Batch    models.Batch
	Quantity int
}

// allocateFEFO satisfies a requested quantity from the retailer's batches in
// first-expiry-first-out order, deducting from each batch inside the
// enclosing transaction. Batches already expired on the given day are not
// eligible. Returns StockError (OutOfStock) when the product has no eligible
// batch at all, and StockError (InsufficientStock) when the eligible batches
// cannot cover the request; in the latter case the deductions already staged
// are discarded by the transaction rollback, not undone here.
func allocateFEFO(tx store.Tx, productID, retailerID uuid.UUID, requested int, today time.Time) ([]allocation, error) {
	batches, err := tx.EligibleBatches(productID, retailerID, today)
	if err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, &store.StockError{ProductID: productID, Kind: store.OutOfStock, Requested: requested}
	}

	available := 0
	remaining := requested
	allocations := make([]allocation, 0, 1)

	for _, batch := range batches {
		available += batch.QuantityAvailable
		if remaining <= 0 {
			continue
		}

		deduct := batch.QuantityAvailable
		if deduct > remaining {
			deduct = remaining
		}
		if err := tx.DeductBatch(batch.ID, deduct); err != nil {
			return nil, err
		}
		allocations = append(allocations, allocation{Batch: batch, Quantity: deduct})
		remaining -= deduct
	}

	if remaining > 0 {
		return nil, &store.StockError{
			ProductID: productID,
			Kind:      store.InsufficientStock,
			Requested: requested,
			Available: available,
		}
	}
	return allocations, nil
}

// today returns the current day truncated to a date in UTC, the granularity
// at which batch expiry is stored and compared.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
