// internal/store/memstore/store.go
package memstore

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/store"
	"github.com/pantrypal/pantrypal-backend/internal/utils"
)

// Store is an in-memory implementation of store.Store. It backs tests and
// local development without PostgreSQL. A single mutex serializes atomic
// units of work; rollback restores a snapshot of the mutable tables.
type Store struct {
	mu sync.RWMutex

	users         map[uuid.UUID]models.User
	usersByPhone  map[string]uuid.UUID
	profiles      map[uuid.UUID]models.RetailerProfile
	profileByUser map[uuid.UUID]uuid.UUID
	products      map[uuid.UUID]models.Product
	prodByBarcode map[string]uuid.UUID
	batches       map[uuid.UUID]models.Batch
	sales         map[uuid.UUID]models.Sale
	salesByCode   map[string]uuid.UUID
	saleItems     map[uuid.UUID]models.SaleItem
	claims        map[uuid.UUID]models.CustomerClaim
	customerItems map[uuid.UUID]models.CustomerItem
}

func New() *Store {
	return &Store{
		users:         make(map[uuid.UUID]models.User),
		usersByPhone:  make(map[string]uuid.UUID),
		profiles:      make(map[uuid.UUID]models.RetailerProfile),
		profileByUser: make(map[uuid.UUID]uuid.UUID),
		products:      make(map[uuid.UUID]models.Product),
		prodByBarcode: make(map[string]uuid.UUID),
		batches:       make(map[uuid.UUID]models.Batch),
		sales:         make(map[uuid.UUID]models.Sale),
		salesByCode:   make(map[string]uuid.UUID),
		saleItems:     make(map[uuid.UUID]models.SaleItem),
		claims:        make(map[uuid.UUID]models.CustomerClaim),
		customerItems: make(map[uuid.UUID]models.CustomerItem),
	}
}

// snapshot copies the tables a transaction may write to.
type snapshot struct {
	batches       map[uuid.UUID]models.Batch
	sales         map[uuid.UUID]models.Sale
	salesByCode   map[string]uuid.UUID
	saleItems     map[uuid.UUID]models.SaleItem
	claims        map[uuid.UUID]models.CustomerClaim
	customerItems map[uuid.UUID]models.CustomerItem
}

func (s *Store) takeSnapshot() snapshot {
	return snapshot{
		batches:       maps.Clone(s.batches),
		sales:         maps.Clone(s.sales),
		salesByCode:   maps.Clone(s.salesByCode),
		saleItems:     maps.Clone(s.saleItems),
		claims:        maps.Clone(s.claims),
		customerItems: maps.Clone(s.customerItems),
	}
}

func (s *Store) restore(snap snapshot) {
	s.batches = snap.batches
	s.sales = snap.sales
	s.salesByCode = snap.salesByCode
	s.saleItems = snap.saleItems
	s.claims = snap.claims
	s.customerItems = snap.customerItems
}

func (s *Store) Atomically(ctx context.Context, fn func(tx store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.takeSnapshot()
	if err := fn(&memTx{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func stamp(base *models.BaseModel) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	now := time.Now().UTC()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByPhone[user.Phone]; exists {
		return fmt.Errorf("user with phone %s: %w", user.Phone, store.ErrDuplicate)
	}
	stamp(&user.BaseModel)
	s.users[user.ID] = *user
	s.usersByPhone[user.Phone] = user.ID
	return nil
}

func (s *Store) GetUserByPhone(_ context.Context, phone string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.usersByPhone[phone]
	if !exists {
		return nil, fmt.Errorf("user: %w", store.ErrNotFound)
	}
	user := s.users[id]
	return &user, nil
}

func (s *Store) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, fmt.Errorf("user: %w", store.ErrNotFound)
	}
	return &user, nil
}

func (s *Store) CreateRetailerProfile(_ context.Context, profile *models.RetailerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profileByUser[profile.UserID]; exists {
		return fmt.Errorf("retailer profile for user %s: %w", profile.UserID, store.ErrDuplicate)
	}
	stamp(&profile.BaseModel)
	profile.User = models.User{}
	s.profiles[profile.ID] = *profile
	s.profileByUser[profile.UserID] = profile.ID
	return nil
}

func (s *Store) GetRetailerProfileByUserID(_ context.Context, userID uuid.UUID) (*models.RetailerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.retailerProfileByUserID(userID)
}

func (s *Store) retailerProfileByUserID(userID uuid.UUID) (*models.RetailerProfile, error) {
	id, exists := s.profileByUser[userID]
	if !exists {
		return nil, fmt.Errorf("retailer profile: %w", store.ErrNotFound)
	}
	profile := s.profiles[id]
	return &profile, nil
}

func (s *Store) CreateProduct(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.prodByBarcode[product.Barcode]; exists {
		return fmt.Errorf("product with barcode %s: %w", product.Barcode, store.ErrDuplicate)
	}
	stamp(&product.BaseModel)
	s.products[product.ID] = *product
	s.prodByBarcode[product.Barcode] = product.ID
	return nil
}

func (s *Store) GetProductByBarcode(_ context.Context, barcode string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.prodByBarcode[barcode]
	if !exists {
		return nil, fmt.Errorf("product: %w", store.ErrNotFound)
	}
	product := s.products[id]
	return &product, nil
}

func (s *Store) GetProductByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.products[id]
	if !exists {
		return nil, fmt.Errorf("product: %w", store.ErrNotFound)
	}
	return &product, nil
}

func (s *Store) SearchProductsByName(_ context.Context, query string, limit int) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	matches := make([]models.Product, 0, limit)
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (s *Store) CreateBatch(_ context.Context, batch *models.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp(&batch.BaseModel)
	stored := *batch
	stored.Product = models.Product{}
	stored.Retailer = models.RetailerProfile{}
	s.batches[batch.ID] = stored
	return nil
}

func (s *Store) ListRetailerBatches(_ context.Context, retailerID uuid.UUID) ([]models.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var batches []models.Batch
	for _, b := range s.batches {
		if b.RetailerID != retailerID {
			continue
		}
		b.Product = s.products[b.ProductID]
		batches = append(batches, b)
	}
	sort.Slice(batches, func(i, j int) bool {
		if batches[i].ExpiryDate.Equal(batches[j].ExpiryDate) {
			return batches[i].ID.String() < batches[j].ID.String()
		}
		return batches[i].ExpiryDate.Before(batches[j].ExpiryDate)
	})
	return batches, nil
}

func (s *Store) ListRetailerSales(_ context.Context, retailerID uuid.UUID, params utils.PaginationParams) ([]models.Sale, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sales []models.Sale
	for _, sale := range s.sales {
		if sale.RetailerID != retailerID {
			continue
		}
		sale.Items = s.saleItemsFor(sale.ID)
		sales = append(sales, sale)
	}

	asc := params.Order == "asc"
	sort.Slice(sales, func(i, j int) bool {
		var less bool
		if params.Sort == "total_amount" {
			less = sales[i].TotalAmount < sales[j].TotalAmount
		} else {
			less = sales[i].CreatedAt.Before(sales[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	total := int64(len(sales))
	start := (params.Page - 1) * params.Limit
	if start >= len(sales) {
		return nil, total, nil
	}
	end := start + params.Limit
	if end > len(sales) {
		end = len(sales)
	}
	return sales[start:end], total, nil
}

func (s *Store) GetSaleWithItems(_ context.Context, saleID uuid.UUID) (*models.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sale, exists := s.sales[saleID]
	if !exists {
		return nil, fmt.Errorf("sale: %w", store.ErrNotFound)
	}
	sale.Retailer = s.profiles[sale.RetailerID]
	sale.Items = s.saleItemsFor(saleID)
	for i := range sale.Items {
		sale.Items[i].Product = s.products[sale.Items[i].ProductID]
	}
	return &sale, nil
}

func (s *Store) saleItemsFor(saleID uuid.UUID) []models.SaleItem {
	var items []models.SaleItem
	for _, it := range s.saleItems {
		if it.SaleID == saleID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID.String() < items[j].ID.String()
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items
}

func (s *Store) ListCustomerItems(_ context.Context, customerID uuid.UUID) ([]models.CustomerItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []models.CustomerItem
	for _, ci := range s.customerItems {
		if ci.CustomerID != customerID {
			continue
		}
		saleItem := s.saleItems[ci.SaleItemID]
		saleItem.Product = s.products[saleItem.ProductID]
		sale := s.sales[saleItem.SaleID]
		sale.Retailer = s.profiles[sale.RetailerID]
		saleItem.Sale = sale
		ci.SaleItem = saleItem
		items = append(items, ci)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].SaleItem.ExpiryDate.Before(items[j].SaleItem.ExpiryDate)
	})
	return items, nil
}

func (s *Store) MarkCustomerItemUsed(_ context.Context, customerID, itemID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.customerItems[itemID]
	if !exists || item.CustomerID != customerID {
		return fmt.Errorf("customer item %s: %w", itemID, store.ErrNotFound)
	}
	item.Status = models.ItemStatusUsed
	item.UpdatedAt = time.Now().UTC()
	s.customerItems[itemID] = item
	return nil
}

func (s *Store) SetCustomerItemReminder(_ context.Context, customerID, itemID uuid.UUID, date time.Time, timeOfDay string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.customerItems[itemID]
	if !exists || item.CustomerID != customerID {
		return fmt.Errorf("customer item %s: %w", itemID, store.ErrNotFound)
	}
	item.ReminderDate = &date
	item.ReminderTime = timeOfDay
	item.UpdatedAt = time.Now().UTC()
	s.customerItems[itemID] = item
	return nil
}
