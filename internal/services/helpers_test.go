// internal/services/helpers_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/store/memstore"
)

// testEnv wires the in-memory store with one retailer and one customer.
type testEnv struct {
	store          *memstore.Store
	retailerUserID uuid.UUID
	retailerID     uuid.UUID
	customerID     uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	st := memstore.New()

	retailer := &models.User{Name: "Retailer One", Phone: "9000000001", Role: models.RoleRetailer}
	require.NoError(t, retailer.SetPassword("ret123"))
	require.NoError(t, st.CreateUser(ctx, retailer))

	profile := &models.RetailerProfile{UserID: retailer.ID, ShopName: "Fresh Mart"}
	require.NoError(t, st.CreateRetailerProfile(ctx, profile))

	customer := &models.User{Name: "Customer One", Phone: "9000000003", Role: models.RoleCustomer}
	require.NoError(t, customer.SetPassword("cus345"))
	require.NoError(t, st.CreateUser(ctx, customer))

	return &testEnv{
		store:          st,
		retailerUserID: retailer.ID,
		retailerID:     profile.ID,
		customerID:     customer.ID,
	}
}

func (e *testEnv) addProduct(t *testing.T, barcode, name string) uuid.UUID {
	t.Helper()
	product := &models.Product{Barcode: barcode, Name: name, Unit: "500 g"}
	require.NoError(t, e.store.CreateProduct(context.Background(), product))
	return product.ID
}

// addBatch creates a batch expiring the given number of days from now.
// Negative values produce an already expired batch.
func (e *testEnv) addBatch(t *testing.T, productID uuid.UUID, qty int, price float64, daysToExpiry int) uuid.UUID {
	t.Helper()
	now := time.Now().UTC()
	batch := &models.Batch{
		ProductID:         productID,
		RetailerID:        e.retailerID,
		MfdDate:           now.AddDate(0, 0, -30),
		ExpiryDate:        now.AddDate(0, 0, daysToExpiry),
		QuantityTotal:     qty,
		QuantityAvailable: qty,
		PurchasePrice:     price / 2,
		SellingPrice:      price,
	}
	require.NoError(t, e.store.CreateBatch(context.Background(), batch))
	return batch.ID
}

// newOtherRetailer registers a second shop and returns its user id.
func newOtherRetailer(t *testing.T, e *testEnv) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Name: "Retailer Two", Phone: "9000000002", Role: models.RoleRetailer}
	require.NoError(t, user.SetPassword("ret234"))
	require.NoError(t, e.store.CreateUser(ctx, user))

	profile := &models.RetailerProfile{UserID: user.ID, ShopName: "Daily Needs"}
	require.NoError(t, e.store.CreateRetailerProfile(ctx, profile))
	return user.ID
}

func (e *testEnv) batchAvailable(t *testing.T, batchID uuid.UUID) int {
	t.Helper()
	batches, err := e.store.ListRetailerBatches(context.Background(), e.retailerID)
	require.NoError(t, err)
	for _, b := range batches {
		if b.ID == batchID {
			return b.QuantityAvailable
		}
	}
	t.Fatalf("batch %s not found", batchID)
	return 0
}
