// internal/store/gormstore/tx.go
package gormstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/store"
)

// gormTx adapts a transaction-scoped *gorm.DB to store.Tx. Row locks taken
// through it are held until the enclosing transaction commits or rolls back.
type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) GetRetailerProfileByUserID(userID uuid.UUID) (*models.RetailerProfile, error) {
	var profile models.RetailerProfile
	if err := t.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, translateNotFound(err, "retailer profile")
	}
	return &profile, nil
}

func (t *gormTx) ClaimCodeExists(code string) (bool, error) {
	var count int64
	if err := t.db.Model(&models.Sale{}).Where("claim_code = ?", code).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check claim code: %w", err)
	}
	return count > 0, nil
}

func (t *gormTx) CreateSale(sale *models.Sale) error {
	if err := t.db.Create(sale).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent sale won the race for this claim code.
			return fmt.Errorf("claim code %s: %w", sale.ClaimCode, store.ErrConflict)
		}
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

func (t *gormTx) SetSaleTotal(saleID uuid.UUID, total float64) error {
	res := t.db.Model(&models.Sale{}).Where("id = ?", saleID).Update("total_amount", total)
	if res.Error != nil {
		return fmt.Errorf("failed to set sale total: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("sale %s: %w", saleID, store.ErrNotFound)
	}
	return nil
}

func (t *gormTx) EligibleBatches(productID, retailerID uuid.UUID, onOrAfter time.Time) ([]models.Batch, error) {
	var batches []models.Batch
	err := t.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND retailer_id = ? AND quantity_available > 0 AND expiry_date >= ?",
			productID, retailerID, onOrAfter).
		Order("expiry_date ASC, id ASC").
		Find(&batches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible batches: %w", err)
	}
	return batches, nil
}

func (t *gormTx) DeductBatch(batchID uuid.UUID, quantity int) error {
	// The guard in the WHERE clause keeps quantity_available non-negative
	// even if a competing transaction slipped past the row lock.
	res := t.db.Model(&models.Batch{}).
		Where("id = ? AND quantity_available >= ?", batchID, quantity).
		UpdateColumn("quantity_available", gorm.Expr("quantity_available - ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to deduct batch: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("batch %s: %w", batchID, store.ErrConflict)
	}
	return nil
}

func (t *gormTx) CreateSaleItem(item *models.SaleItem) error {
	if err := t.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create sale item: %w", err)
	}
	return nil
}

func (t *gormTx) GetSaleByClaimCode(code string) (*models.Sale, error) {
	var sale models.Sale
	err := t.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("claim_code = ?", code).
		First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("claim code %s: %w", code, store.ErrInvalidClaimCode)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &sale, nil
}

func (t *gormTx) CreateCustomerClaim(claim *models.CustomerClaim) error {
	if err := t.db.Create(claim).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("sale %s: %w", claim.SaleID, store.ErrAlreadyClaimed)
		}
		return fmt.Errorf("failed to create customer claim: %w", err)
	}
	return nil
}

func (t *gormTx) ListSaleItems(saleID uuid.UUID) ([]models.SaleItem, error) {
	var items []models.SaleItem
	if err := t.db.Where("sale_id = ?", saleID).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list sale items: %w", err)
	}
	return items, nil
}

func (t *gormTx) CreateCustomerItem(item *models.CustomerItem) error {
	if err := t.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create customer item: %w", err)
	}
	return nil
}

func (t *gormTx) MarkSaleClaimed(saleID uuid.UUID) error {
	res := t.db.Model(&models.Sale{}).Where("id = ?", saleID).Update("is_claimed", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark sale claimed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("sale %s: %w", saleID, store.ErrNotFound)
	}
	return nil
}
