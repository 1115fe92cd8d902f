// internal/services/sale_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/store"
	"github.com/pantrypal/pantrypal-backend/internal/utils"
)

// SaleService coordinates multi-item checkouts: FEFO allocation per line
// item, price/date snapshots, claim code generation, and the final total,
// all committed or rolled back as one unit of work.
type SaleService struct {
	store store.Store
}

type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type CreateSaleRequest struct {
	Items []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

type CreateSaleResult struct {
	SaleID      uuid.UUID `json:"sale_id"`
	ClaimCode   string    `json:"claim_code"`
	TotalAmount float64   `json:"total_amount"`
}

func NewSaleService(store store.Store) *SaleService {
	return &SaleService{store: store}
}

func (s *SaleService) CreateSale(ctx context.Context, retailerUserID uuid.UUID, req *CreateSaleRequest) (*CreateSaleResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: no items provided", store.ErrInvalidInput)
	}

	var result CreateSaleResult
	saleDay := today()

	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		retailer, err := tx.GetRetailerProfileByUserID(retailerUserID)
		if err != nil {
			return err
		}

		code, err := uniqueClaimCode(tx)
		if err != nil {
			return err
		}

		sale := &models.Sale{
			RetailerID:  retailer.ID,
			TotalAmount: 0,
			ClaimCode:   code,
			IsClaimed:   false,
		}
		if err := tx.CreateSale(sale); err != nil {
			return err
		}

		var totalAmount float64
		for _, item := range req.Items {
			allocations, err := allocateFEFO(tx, item.ProductID, retailer.ID, item.Quantity, saleDay)
			if err != nil {
				return err
			}

			for _, alloc := range allocations {
				itemTotal := float64(alloc.Quantity) * alloc.Batch.SellingPrice
				saleItem := &models.SaleItem{
					SaleID:       sale.ID,
					ProductID:    item.ProductID,
					BatchID:      alloc.Batch.ID,
					Quantity:     alloc.Quantity,
					PricePerUnit: alloc.Batch.SellingPrice,
					TotalPrice:   itemTotal,
					MfdDate:      alloc.Batch.MfdDate,
					ExpiryDate:   alloc.Batch.ExpiryDate,
				}
				if err := tx.CreateSaleItem(saleItem); err != nil {
					return err
				}
				totalAmount += itemTotal
			}
		}

		if err := tx.SetSaleTotal(sale.ID, totalAmount); err != nil {
			return err
		}

		result = CreateSaleResult{
			SaleID:      sale.ID,
			ClaimCode:   code,
			TotalAmount: totalAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"sale_id":      result.SaleID,
		"total_amount": result.TotalAmount,
		"line_items":   len(req.Items),
	}).Info("Sale completed")

	return &result, nil
}

func (s *SaleService) GetSaleHistory(ctx context.Context, retailerUserID uuid.UUID, params utils.PaginationParams) ([]models.Sale, int64, error) {
	retailer, err := s.store.GetRetailerProfileByUserID(ctx, retailerUserID)
	if err != nil {
		return nil, 0, err
	}
	return s.store.ListRetailerSales(ctx, retailer.ID, params)
}
