// internal/services/inventory_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrypal/pantrypal-backend/internal/store"
)

func TestAddStock(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInventoryService(env.store)

	productID := env.addProduct(t, "3000000001", "Olive Oil")

	batch, err := svc.AddStock(context.Background(), env.retailerUserID, &AddStockRequest{
		ProductID:     productID,
		MfdDate:       "2026-06-01",
		ExpiryDate:    "2027-06-01",
		Quantity:      40,
		PurchasePrice: 120,
		SellingPrice:  180,
	})
	require.NoError(t, err)

	assert.Equal(t, 40, batch.QuantityTotal)
	assert.Equal(t, 40, batch.QuantityAvailable)
	assert.Equal(t, env.retailerID, batch.RetailerID)
}

func TestAddStockRejectsExpiryBeforeMfd(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInventoryService(env.store)

	productID := env.addProduct(t, "3000000002", "Flour")

	for _, expiry := range []string{"2026-05-01", "2026-06-01"} {
		_, err := svc.AddStock(context.Background(), env.retailerUserID, &AddStockRequest{
			ProductID:  productID,
			MfdDate:    "2026-06-01",
			ExpiryDate: expiry,
			Quantity:   10,
		})
		assert.ErrorIs(t, err, store.ErrInvalidInput, "expiry %s", expiry)
	}
}

func TestAddStockRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInventoryService(env.store)

	productID := env.addProduct(t, "3000000003", "Sugar")

	_, err := svc.AddStock(context.Background(), env.retailerUserID, &AddStockRequest{
		ProductID:  productID,
		MfdDate:    "not-a-date",
		ExpiryDate: "2027-01-01",
		Quantity:   10,
	})
	assert.ErrorIs(t, err, store.ErrInvalidInput)

	_, err = svc.AddStock(context.Background(), env.retailerUserID, &AddStockRequest{
		ProductID:  productID,
		MfdDate:    "2026-01-01",
		ExpiryDate: "2027-01-01",
		Quantity:   0,
	})
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestAddStockUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInventoryService(env.store)

	_, err := svc.AddStock(context.Background(), env.retailerUserID, &AddStockRequest{
		ProductID:  uuid.New(),
		MfdDate:    "2026-01-01",
		ExpiryDate: "2027-01-01",
		Quantity:   10,
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetInventorySortedByExpiry(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInventoryService(env.store)

	productID := env.addProduct(t, "3000000004", "Pasta")
	env.addBatch(t, productID, 10, 30, 30)
	env.addBatch(t, productID, 10, 30, 5)
	env.addBatch(t, productID, 10, 30, 15)

	batches, err := svc.GetInventory(context.Background(), env.retailerUserID)
	require.NoError(t, err)
	require.Len(t, batches, 3)
	for i := 1; i < len(batches); i++ {
		assert.False(t, batches[i].ExpiryDate.Before(batches[i-1].ExpiryDate))
	}
	assert.Equal(t, "Pasta", batches[0].Product.Name)
}
