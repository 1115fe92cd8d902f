// internal/services/sale_service_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/store"
	"github.com/pantrypal/pantrypal-backend/internal/utils"
)

func TestCreateSaleAllocatesSoonestExpiryFirst(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSaleService(env.store)

	productID := env.addProduct(t, "1000000001", "Milk 1L")
	batchA := env.addBatch(t, productID, 5, 20, 10)
	batchB := env.addBatch(t, productID, 10, 22, 20)

	result, err := svc.CreateSale(context.Background(), env.retailerUserID, &CreateSaleRequest{
		Items: []SaleItemRequest{{ProductID: productID, Quantity: 8}},
	})
	require.NoError(t, err)

	// 5 units at 20 from the soonest-expiring batch, 3 at 22 from the next.
	assert.Equal(t, 166.0, result.TotalAmount)
	assert.Len(t, result.ClaimCode, 6)
	assert.Equal(t, 0, env.batchAvailable(t, batchA))
	assert.Equal(t, 7, env.batchAvailable(t, batchB))

	sale, err := env.store.GetSaleWithItems(context.Background(), result.SaleID)
	require.NoError(t, err)
	require.Len(t, sale.Items, 2)
	byBatch := map[uuid.UUID]int{}
	for _, item := range sale.Items {
		byBatch[item.BatchID] = item.Quantity
	}
	assert.Equal(t, 5, byBatch[batchA])
	assert.Equal(t, 3, byBatch[batchB])
	assert.Equal(t, 166.0, sale.TotalAmount)
	assert.False(t, sale.IsClaimed)
}

func TestCreateSaleSkipsExpiredBatches(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSaleService(env.store)

	productID := env.addProduct(t, "1000000002", "Yogurt")
	expired := env.addBatch(t, productID, 50, 15, -1)
	fresh := env.addBatch(t, productID, 10, 18, 5)

	result, err := svc.CreateSale(context.Background(), env.retailerUserID, &CreateSaleRequest{
		Items: []SaleItemRequest{{ProductID: productID, Quantity: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, 72.0, result.TotalAmount)
	assert.Equal(t, 50, env.batchAvailable(t, expired))
	assert.Equal(t, 6, env.batchAvailable(t, fresh))
}

func TestCreateSaleOutOfStock(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSaleService(env.store)

	productID := env.addProduct(t, "1000000003", "Bread")

	_, err := svc.CreateSale(context.Background(), env.retailerUserID, &CreateSaleRequest{
		Items: []SaleItemRequest{{ProductID: productID, Quantity: 1}},
	})
	require.Error(t, err)

	var stockErr *store.StockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, store.OutOfStock, stockErr.Kind)
	assert.Equal(t, productID, stockErr.ProductID)
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSaleService(env.store)

	productID := env.addProduct(t, "1000000004", "Eggs")
	batchID := env.addBatch(t, productID, 3, 10, 7)

	_, err := svc.CreateSale(context.Background(), env.retailerUserID, &CreateSaleRequest{
		Items: []SaleItemRequest{{ProductID: productID, Quantity: 5}},
	})
	require.Error(t, err)

	var stockErr *store.StockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, store.InsufficientStock, stockErr.Kind)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 3, stockErr.Available)

	// Rolled back, nothing deducted.
	assert.Equal(t, 3, env.batchAvailable(t, batchID))
}

func TestCreateSaleRollsBackAllItemsOnFailure(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSaleService(env.store)

	okProduct := env.addProduct(t, "1000000005", "Rice 5kg")
	okBatch := env.addBatch(t, okProduct, 20, 100, 30)
	shortProduct := env.addProduct(t, "1000000006", "Lentils")
	env.addBatch(t, shortProduct, 1, 40, 30)

	_, err := svc.CreateSale(context.Background(), env.retailerUserID, &CreateSaleRequest{
		Items: []SaleItemRequest{
			{ProductID: okProduct, Quantity: 10},
			{ProductID: shortProduct, Quantity: 2},
		},
	})
	require.Error(t, err)

	// The first item's deduction must not survive the failed sale.
	assert.Equal(t, 20, env.batchAvailable(t, okBatch))

	sales, total, err := env.store.ListRetailerSales(context.Background(), env.retailerID, utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, sales)
}

func TestCreateSaleRejectsEmptyItems(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSaleService(env.store)

	_, err := svc.CreateSale(context.Background(), env.retailerUserID, &CreateSaleRequest{})
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestCreateSaleUnknownRetailer(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSaleService(env.store)

	productID := env.addProduct(t, "1000000007", "Butter")
	env.addBatch(t, productID, 5, 30, 10)

	_, err := svc.CreateSale(context.Background(), uuid.New(), &CreateSaleRequest{
		Items: []SaleItemRequest{{ProductID: productID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateSaleIgnoresOtherRetailersBatches(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSaleService(env.store)

	productID := env.addProduct(t, "1000000009", "Jam")
	otherUserID := newOtherRetailer(t, env)
	otherProfile, err := env.store.GetRetailerProfileByUserID(context.Background(), otherUserID)
	require.NoError(t, err)

	otherBatch := &models.Batch{
		ProductID:         productID,
		RetailerID:        otherProfile.ID,
		MfdDate:           time.Now().UTC().AddDate(0, 0, -10),
		ExpiryDate:        time.Now().UTC().AddDate(0, 0, 10),
		QuantityTotal:     50,
		QuantityAvailable: 50,
		SellingPrice:      35,
	}
	require.NoError(t, env.store.CreateBatch(context.Background(), otherBatch))

	_, err = svc.CreateSale(context.Background(), env.retailerUserID, &CreateSaleRequest{
		Items: []SaleItemRequest{{ProductID: productID, Quantity: 1}},
	})
	var stockErr *store.StockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, store.OutOfStock, stockErr.Kind)
}

func TestGetSaleHistoryNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSaleService(env.store)

	productID := env.addProduct(t, "1000000008", "Cheese")
	env.addBatch(t, productID, 100, 50, 15)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateSale(context.Background(), env.retailerUserID, &CreateSaleRequest{
			Items: []SaleItemRequest{{ProductID: productID, Quantity: 2}},
		})
		require.NoError(t, err)
	}

	sales, total, err := svc.GetSaleHistory(context.Background(), env.retailerUserID, utils.PaginationParams{
		Page: 1, Limit: 2, Sort: "created_at", Order: "desc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, sales, 2)
	assert.False(t, sales[1].CreatedAt.After(sales[0].CreatedAt))
}
