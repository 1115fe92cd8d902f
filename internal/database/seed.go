// internal/database/seed.go
package database

import (
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/pantrypal/pantrypal-backend/internal/models"
)

// Seed wipes the database and loads demo data: two shops, two customers,
// 120 products, batches for the first shop (some already expired) and a
// handful of unclaimed sales.
func Seed(db *gorm.DB) error {
	tables := []string{
		"customer_items", "customer_claims", "sale_items", "sales",
		"batches", "products", "retailer_profiles", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	type seedUser struct {
		name     string
		phone    string
		password string
		role     models.Role
		shop     string
	}
	seedUsers := []seedUser{
		{"Retailer One", "9000000001", "ret123", models.RoleRetailer, "Fresh Mart"},
		{"Retailer Two", "9000000002", "ret234", models.RoleRetailer, "Daily Needs"},
		{"Customer One", "9000000003", "cus345", models.RoleCustomer, ""},
		{"Customer Two", "9000000004", "cus456", models.RoleCustomer, ""},
	}

	var profiles []models.RetailerProfile
	for _, su := range seedUsers {
		user := &models.User{
			Name:  su.name,
			Phone: su.phone,
			Role:  su.role,
		}
		if err := user.SetPassword(su.password); err != nil {
			return err
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("creating user %s: %w", su.phone, err)
		}
		if su.role == models.RoleRetailer {
			profile := models.RetailerProfile{UserID: user.ID, ShopName: su.shop}
			if err := db.Create(&profile).Error; err != nil {
				return fmt.Errorf("creating profile %s: %w", su.shop, err)
			}
			profiles = append(profiles, profile)
		}
	}

	var products []models.Product
	for i := 1; i <= 120; i++ {
		product := models.Product{
			Barcode:  fmt.Sprintf("100000000%d", i),
			Name:     fmt.Sprintf("Product %d", i),
			Brand:    fmt.Sprintf("Brand %d", rand.Intn(10)+1),
			Category: fmt.Sprintf("Category %d", rand.Intn(8)+1),
			Unit:     fmt.Sprintf("%d g", rand.Intn(901)+100),
		}
		if err := db.Create(&product).Error; err != nil {
			return fmt.Errorf("creating product %d: %w", i, err)
		}
		products = append(products, product)
	}

	// Batches for the first shop. Expiry offsets range from -10 to +60 days
	// so some batches are already expired.
	now := time.Now().UTC()
	for i := 0; i < 100; i++ {
		product := products[rand.Intn(len(products))]
		total := rand.Intn(181) + 20
		batch := models.Batch{
			ProductID:         product.ID,
			RetailerID:        profiles[0].ID,
			MfdDate:           now.AddDate(0, 0, -(rand.Intn(51) + 10)),
			ExpiryDate:        now.AddDate(0, 0, rand.Intn(71)-10),
			QuantityTotal:     total,
			QuantityAvailable: rand.Intn(total) + 1,
			PurchasePrice:     float64(rand.Intn(41) + 10),
			SellingPrice:      float64(rand.Intn(81) + 20),
		}
		if err := db.Create(&batch).Error; err != nil {
			return fmt.Errorf("creating batch: %w", err)
		}
	}

	// Unclaimed sales ready to exercise the claim flow.
	for i := 0; i < 20; i++ {
		sale := models.Sale{
			RetailerID:  profiles[0].ID,
			TotalAmount: float64(rand.Intn(1801) + 200),
			ClaimCode:   fmt.Sprintf("%06d", rand.Intn(900000)+100000),
			IsClaimed:   false,
		}
		if err := db.Create(&sale).Error; err != nil {
			return fmt.Errorf("creating sale: %w", err)
		}
	}

	return nil
}
