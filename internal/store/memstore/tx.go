// internal/store/memstore/tx.go
package memstore

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/store"
)

// memTx runs with the store mutex already held by Atomically, so its reads
// and writes are trivially isolated from other units of work.
type memTx struct {
	s *Store
}

func (t *memTx) GetRetailerProfileByUserID(userID uuid.UUID) (*models.RetailerProfile, error) {
	return t.s.retailerProfileByUserID(userID)
}

func (t *memTx) ClaimCodeExists(code string) (bool, error) {
	_, exists := t.s.salesByCode[code]
	return exists, nil
}

func (t *memTx) CreateSale(sale *models.Sale) error {
	if _, exists := t.s.salesByCode[sale.ClaimCode]; exists {
		return fmt.Errorf("claim code %s: %w", sale.ClaimCode, store.ErrConflict)
	}
	stamp(&sale.BaseModel)
	stored := *sale
	stored.Retailer = models.RetailerProfile{}
	stored.Items = nil
	t.s.sales[sale.ID] = stored
	t.s.salesByCode[sale.ClaimCode] = sale.ID
	return nil
}

func (t *memTx) SetSaleTotal(saleID uuid.UUID, total float64) error {
	sale, exists := t.s.sales[saleID]
	if !exists {
		return fmt.Errorf("sale %s: %w", saleID, store.ErrNotFound)
	}
	sale.TotalAmount = total
	sale.UpdatedAt = time.Now().UTC()
	t.s.sales[saleID] = sale
	return nil
}

func (t *memTx) EligibleBatches(productID, retailerID uuid.UUID, onOrAfter time.Time) ([]models.Batch, error) {
	var batches []models.Batch
	for _, b := range t.s.batches {
		if b.ProductID != productID || b.RetailerID != retailerID {
			continue
		}
		if b.QuantityAvailable <= 0 || b.ExpiryDate.Before(onOrAfter) {
			continue
		}
		batches = append(batches, b)
	}
	sort.Slice(batches, func(i, j int) bool {
		if batches[i].ExpiryDate.Equal(batches[j].ExpiryDate) {
			return batches[i].ID.String() < batches[j].ID.String()
		}
		return batches[i].ExpiryDate.Before(batches[j].ExpiryDate)
	})
	return batches, nil
}

func (t *memTx) DeductBatch(batchID uuid.UUID, quantity int) error {
	batch, exists := t.s.batches[batchID]
	if !exists {
		return fmt.Errorf("batch %s: %w", batchID, store.ErrNotFound)
	}
	if batch.QuantityAvailable < quantity {
		return fmt.Errorf("batch %s: %w", batchID, store.ErrConflict)
	}
	batch.QuantityAvailable -= quantity
	batch.UpdatedAt = time.Now().UTC()
	t.s.batches[batchID] = batch
	return nil
}

func (t *memTx) CreateSaleItem(item *models.SaleItem) error {
	stamp(&item.BaseModel)
	stored := *item
	stored.Sale = models.Sale{}
	stored.Product = models.Product{}
	stored.Batch = models.Batch{}
	t.s.saleItems[item.ID] = stored
	return nil
}

func (t *memTx) GetSaleByClaimCode(code string) (*models.Sale, error) {
	id, exists := t.s.salesByCode[code]
	if !exists {
		return nil, fmt.Errorf("claim code %s: %w", code, store.ErrInvalidClaimCode)
	}
	sale := t.s.sales[id]
	return &sale, nil
}

func (t *memTx) CreateCustomerClaim(claim *models.CustomerClaim) error {
	for _, existing := range t.s.claims {
		if existing.SaleID == claim.SaleID {
			return fmt.Errorf("sale %s: %w", claim.SaleID, store.ErrAlreadyClaimed)
		}
	}
	stamp(&claim.BaseModel)
	stored := *claim
	stored.Sale = models.Sale{}
	stored.Customer = models.User{}
	t.s.claims[claim.ID] = stored
	return nil
}

func (t *memTx) ListSaleItems(saleID uuid.UUID) ([]models.SaleItem, error) {
	return t.s.saleItemsFor(saleID), nil
}

func (t *memTx) CreateCustomerItem(item *models.CustomerItem) error {
	stamp(&item.BaseModel)
	if item.Status == "" {
		item.Status = models.ItemStatusActive
	}
	stored := *item
	stored.Customer = models.User{}
	stored.SaleItem = models.SaleItem{}
	t.s.customerItems[item.ID] = stored
	return nil
}

func (t *memTx) MarkSaleClaimed(saleID uuid.UUID) error {
	sale, exists := t.s.sales[saleID]
	if !exists {
		return fmt.Errorf("sale %s: %w", saleID, store.ErrNotFound)
	}
	sale.IsClaimed = true
	sale.UpdatedAt = time.Now().UTC()
	t.s.sales[saleID] = sale
	return nil
}
