// internal/services/claim_service.go
package services

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/store"
)

// ClaimService binds a sale's items to the claiming customer exactly once.
type ClaimService struct {
	store store.Store
}

func NewClaimService(store store.Store) *ClaimService {
	return &ClaimService{store: store}
}

var claimCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// ClaimPurchase resolves a claim code for a customer. The claimed-flag check
// and update run inside one atomic unit with the sale row locked, so two
// concurrent claims of the same code cannot both succeed. Returns the number
// of items transferred to the customer.
func (s *ClaimService) ClaimPurchase(ctx context.Context, customerID uuid.UUID, claimCode string) (int, error) {
	if !claimCodePattern.MatchString(claimCode) {
		return 0, fmt.Errorf("%w: claim code must be 6 digits", store.ErrInvalidInput)
	}

	var itemsClaimed int
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		sale, err := tx.GetSaleByClaimCode(claimCode)
		if err != nil {
			return err
		}
		if sale.IsClaimed {
			return fmt.Errorf("sale %s: %w", sale.ID, store.ErrAlreadyClaimed)
		}

		claim := &models.CustomerClaim{
			SaleID:     sale.ID,
			CustomerID: customerID,
		}
		if err := tx.CreateCustomerClaim(claim); err != nil {
			return err
		}

		saleItems, err := tx.ListSaleItems(sale.ID)
		if err != nil {
			return err
		}

		for _, item := range saleItems {
			customerItem := &models.CustomerItem{
				CustomerID: customerID,
				SaleItemID: item.ID,
				Status:     models.ItemStatusActive,
			}
			if err := tx.CreateCustomerItem(customerItem); err != nil {
				return err
			}
		}

		if err := tx.MarkSaleClaimed(sale.ID); err != nil {
			return err
		}

		itemsClaimed = len(saleItems)
		return nil
	})
	if err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"customer_id": customerID,
		"items":       itemsClaimed,
	}).Info("Purchase claimed")

	return itemsClaimed, nil
}
