// internal/services/receipt_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrypal/pantrypal-backend/internal/store"
)

func TestGenerateReceipt(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReceiptService(env.store)

	sale := env.makeSale(t, 3)

	pdf, err := svc.GenerateReceipt(context.Background(), env.retailerUserID, sale.SaleID)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestGenerateReceiptRejectsOtherRetailer(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReceiptService(env.store)

	sale := env.makeSale(t, 1)

	other := newOtherRetailer(t, env)
	_, err := svc.GenerateReceipt(context.Background(), other, sale.SaleID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGenerateReceiptUnknownSale(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReceiptService(env.store)

	_, err := svc.GenerateReceipt(context.Background(), env.retailerUserID, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
