// internal/store/memstore/store_test.go
package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/store"
)

func seedBatch(t *testing.T, s *Store) *models.Batch {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Name: "Shop", Phone: "9000000001", Role: models.RoleRetailer}
	require.NoError(t, user.SetPassword("x"))
	require.NoError(t, s.CreateUser(ctx, user))

	profile := &models.RetailerProfile{UserID: user.ID, ShopName: "Shop"}
	require.NoError(t, s.CreateRetailerProfile(ctx, profile))

	product := &models.Product{Barcode: "1", Name: "Thing"}
	require.NoError(t, s.CreateProduct(ctx, product))

	batch := &models.Batch{
		ProductID:         product.ID,
		RetailerID:        profile.ID,
		MfdDate:           time.Now().UTC().AddDate(0, 0, -1),
		ExpiryDate:        time.Now().UTC().AddDate(0, 0, 30),
		QuantityTotal:     10,
		QuantityAvailable: 10,
		SellingPrice:      5,
	}
	require.NoError(t, s.CreateBatch(ctx, batch))
	return batch
}

func TestAtomicallyRollsBackOnError(t *testing.T) {
	s := New()
	batch := seedBatch(t, s)

	boom := errors.New("boom")
	err := s.Atomically(context.Background(), func(tx store.Tx) error {
		if err := tx.DeductBatch(batch.ID, 4); err != nil {
			return err
		}
		sale := &models.Sale{RetailerID: batch.RetailerID, ClaimCode: "123456"}
		if err := tx.CreateSale(sale); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	batches, err := s.ListRetailerBatches(context.Background(), batch.RetailerID)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, 10, batches[0].QuantityAvailable)

	err = s.Atomically(context.Background(), func(tx store.Tx) error {
		exists, err := tx.ClaimCodeExists("123456")
		require.NoError(t, err)
		assert.False(t, exists, "claim code survived rollback")
		return nil
	})
	require.NoError(t, err)
}

func TestDeductBatchGuardsAvailability(t *testing.T) {
	s := New()
	batch := seedBatch(t, s)

	err := s.Atomically(context.Background(), func(tx store.Tx) error {
		return tx.DeductBatch(batch.ID, 11)
	})
	assert.ErrorIs(t, err, store.ErrConflict)

	batches, err := s.ListRetailerBatches(context.Background(), batch.RetailerID)
	require.NoError(t, err)
	assert.Equal(t, 10, batches[0].QuantityAvailable)
}

func TestCreateSaleRejectsDuplicateClaimCode(t *testing.T) {
	s := New()
	batch := seedBatch(t, s)

	err := s.Atomically(context.Background(), func(tx store.Tx) error {
		return tx.CreateSale(&models.Sale{RetailerID: batch.RetailerID, ClaimCode: "654321"})
	})
	require.NoError(t, err)

	err = s.Atomically(context.Background(), func(tx store.Tx) error {
		return tx.CreateSale(&models.Sale{RetailerID: batch.RetailerID, ClaimCode: "654321"})
	})
	assert.ErrorIs(t, err, store.ErrConflict)
}
