// internal/store/store.go
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/utils"
)

// Store is the storage handle injected into every service. It is implemented
// by gormstore (PostgreSQL) and memstore (in-memory test double).
type Store interface {
	// Atomically runs fn inside a single atomic, isolated unit of work.
	// If fn returns an error, every write staged through the Tx is
	// discarded; the commit happens only when fn returns nil.
	Atomically(ctx context.Context, fn func(tx Tx) error) error

	// Users and profiles
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateRetailerProfile(ctx context.Context, profile *models.RetailerProfile) error
	GetRetailerProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.RetailerProfile, error)

	// Products
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByBarcode(ctx context.Context, barcode string) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	SearchProductsByName(ctx context.Context, query string, limit int) ([]models.Product, error)

	// Batches
	CreateBatch(ctx context.Context, batch *models.Batch) error
	ListRetailerBatches(ctx context.Context, retailerID uuid.UUID) ([]models.Batch, error)

	// Sales
	ListRetailerSales(ctx context.Context, retailerID uuid.UUID, params utils.PaginationParams) ([]models.Sale, int64, error)
	GetSaleWithItems(ctx context.Context, saleID uuid.UUID) (*models.Sale, error)

	// Customer items
	ListCustomerItems(ctx context.Context, customerID uuid.UUID) ([]models.CustomerItem, error)
	MarkCustomerItemUsed(ctx context.Context, customerID, itemID uuid.UUID) error
	SetCustomerItemReminder(ctx context.Context, customerID, itemID uuid.UUID, date time.Time, timeOfDay string) error
}

// Tx exposes the write operations available inside an atomic unit of work.
// Implementations must make reads through a Tx see the transaction's own
// staged writes, and must hide those writes from other transactions until
// commit.
type Tx interface {
	GetRetailerProfileByUserID(userID uuid.UUID) (*models.RetailerProfile, error)

	// Sale coordination
	ClaimCodeExists(code string) (bool, error)
	CreateSale(sale *models.Sale) error
	SetSaleTotal(saleID uuid.UUID, total float64) error

	// Batch allocation. EligibleBatches returns batches with stock left and
	// an expiry on or after the given day, ordered by ascending expiry date
	// (ties broken by batch id), with the rows locked for update.
	EligibleBatches(productID, retailerID uuid.UUID, onOrAfter time.Time) ([]models.Batch, error)
	// DeductBatch decrements quantity_available, failing with ErrConflict
	// if the batch no longer holds the requested quantity.
	DeductBatch(batchID uuid.UUID, quantity int) error
	CreateSaleItem(item *models.SaleItem) error

	// Claim resolution. GetSaleByClaimCode locks the sale row so that the
	// claimed-flag check and the flag update form one serialized step.
	GetSaleByClaimCode(code string) (*models.Sale, error)
	CreateCustomerClaim(claim *models.CustomerClaim) error
	ListSaleItems(saleID uuid.UUID) ([]models.SaleItem, error)
	CreateCustomerItem(item *models.CustomerItem) error
	MarkSaleClaimed(saleID uuid.UUID) error
}
