// internal/store/gormstore/store.go
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/store"
	"github.com/pantrypal/pantrypal-backend/internal/utils"
)

// Store is the PostgreSQL-backed implementation of store.Store.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Atomically wraps fn in a database transaction. gorm rolls back whenever fn
// returns an error or panics, and commits otherwise, so early returns inside
// fn can never leave a half-applied unit of work behind.
func (s *Store) Atomically(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	})
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user with phone %s: %w", user.Phone, store.ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, translateNotFound(err, "user")
	}
	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateNotFound(err, "user")
	}
	return &user, nil
}

func (s *Store) CreateRetailerProfile(ctx context.Context, profile *models.RetailerProfile) error {
	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create retailer profile: %w", err)
	}
	return nil
}

func (s *Store) GetRetailerProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.RetailerProfile, error) {
	var profile models.RetailerProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, translateNotFound(err, "retailer profile")
	}
	return &profile, nil
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("product with barcode %s: %w", product.Barcode, store.ErrDuplicate)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (s *Store) GetProductByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Where("barcode = ?", barcode).First(&product).Error; err != nil {
		return nil, translateNotFound(err, "product")
	}
	return &product, nil
}

func (s *Store) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translateNotFound(err, "product")
	}
	return &product, nil
}

func (s *Store) SearchProductsByName(ctx context.Context, query string, limit int) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Order("name ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func (s *Store) CreateBatch(ctx context.Context, batch *models.Batch) error {
	if err := s.db.WithContext(ctx).Create(batch).Error; err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}
	return nil
}

func (s *Store) ListRetailerBatches(ctx context.Context, retailerID uuid.UUID) ([]models.Batch, error) {
	var batches []models.Batch
	err := s.db.WithContext(ctx).
		Preload("Product").
		Where("retailer_id = ?", retailerID).
		Order("expiry_date ASC, id ASC").
		Find(&batches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	return batches, nil
}

func (s *Store) ListRetailerSales(ctx context.Context, retailerID uuid.UUID, params utils.PaginationParams) ([]models.Sale, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Sale{}).Where("retailer_id = ?", retailerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	allowedSortFields := []string{"created_at", "total_amount"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var sales []models.Sale
	if err := query.Preload("Items").Find(&sales).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, total, nil
}

func (s *Store) GetSaleWithItems(ctx context.Context, saleID uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := s.db.WithContext(ctx).
		Preload("Retailer").
		Preload("Items").
		Preload("Items.Product").
		First(&sale, saleID).Error
	if err != nil {
		return nil, translateNotFound(err, "sale")
	}
	return &sale, nil
}

func (s *Store) ListCustomerItems(ctx context.Context, customerID uuid.UUID) ([]models.CustomerItem, error) {
	var items []models.CustomerItem
	err := s.db.WithContext(ctx).
		Preload("SaleItem").
		Preload("SaleItem.Product").
		Preload("SaleItem.Sale.Retailer").
		Joins("JOIN sale_items ON sale_items.id = customer_items.sale_item_id").
		Where("customer_items.customer_id = ?", customerID).
		Order("sale_items.expiry_date ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list customer items: %w", err)
	}
	return items, nil
}

func (s *Store) MarkCustomerItemUsed(ctx context.Context, customerID, itemID uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&models.CustomerItem{}).
		Where("id = ? AND customer_id = ?", itemID, customerID).
		Update("status", models.ItemStatusUsed)
	if res.Error != nil {
		return fmt.Errorf("failed to mark item used: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("customer item %s: %w", itemID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) SetCustomerItemReminder(ctx context.Context, customerID, itemID uuid.UUID, date time.Time, timeOfDay string) error {
	res := s.db.WithContext(ctx).Model(&models.CustomerItem{}).
		Where("id = ? AND customer_id = ?", itemID, customerID).
		Updates(map[string]interface{}{
			"reminder_date": date,
			"reminder_time": timeOfDay,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to set reminder: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("customer item %s: %w", itemID, store.ErrNotFound)
	}
	return nil
}

func translateNotFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", resource, store.ErrNotFound)
	}
	return fmt.Errorf("database error: %w", err)
}
