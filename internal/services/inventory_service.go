// internal/services/inventory_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/store"
	"github.com/pantrypal/pantrypal-backend/internal/utils"
)

type InventoryService struct {
	store store.Store
}

type AddStockRequest struct {
	ProductID     uuid.UUID `json:"product_id" validate:"required"`
	MfdDate       string    `json:"mfd_date" validate:"required"`
	ExpiryDate    string    `json:"expiry_date" validate:"required"`
	Quantity      int       `json:"quantity" validate:"required,min=1"`
	PurchasePrice float64   `json:"purchase_price" validate:"min=0"`
	SellingPrice  float64   `json:"selling_price" validate:"min=0"`
}

func NewInventoryService(store store.Store) *InventoryService {
	return &InventoryService{store: store}
}

// AddStock creates a batch for the retailer. The expiry date must be strictly
// after the manufacture date; quantity_available starts at quantity_total.
func (s *InventoryService) AddStock(ctx context.Context, retailerUserID uuid.UUID, req *AddStockRequest) (*models.Batch, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}

	mfd, err := time.Parse("2006-01-02", req.MfdDate)
	if err != nil {
		return nil, fmt.Errorf("%w: mfd_date must be YYYY-MM-DD", store.ErrInvalidInput)
	}
	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: expiry_date must be YYYY-MM-DD", store.ErrInvalidInput)
	}
	if !expiry.After(mfd) {
		return nil, fmt.Errorf("%w: expiry date must be after manufacture date", store.ErrInvalidInput)
	}

	retailer, err := s.store.GetRetailerProfileByUserID(ctx, retailerUserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetProductByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	batch := &models.Batch{
		ProductID:         req.ProductID,
		RetailerID:        retailer.ID,
		MfdDate:           mfd,
		ExpiryDate:        expiry,
		QuantityTotal:     req.Quantity,
		QuantityAvailable: req.Quantity,
		PurchasePrice:     req.PurchasePrice,
		SellingPrice:      req.SellingPrice,
	}
	if err := s.store.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// GetInventory lists the retailer's batches with their products, soonest
// expiry first.
func (s *InventoryService) GetInventory(ctx context.Context, retailerUserID uuid.UUID) ([]models.Batch, error) {
	retailer, err := s.store.GetRetailerProfileByUserID(ctx, retailerUserID)
	if err != nil {
		return nil, err
	}
	return s.store.ListRetailerBatches(ctx, retailer.ID)
}
