// internal/models/batch.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Batch is a discrete lot of a product received by a retailer. QuantityTotal
// is immutable after creation; QuantityAvailable only decreases, via sale
// allocation, and must stay within [0, QuantityTotal].
type Batch struct {
	BaseModel
	ProductID         uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	RetailerID        uuid.UUID `json:"retailer_id" gorm:"type:uuid;not null;index"`
	MfdDate           time.Time `json:"mfd_date" gorm:"type:date;not null"`
	ExpiryDate        time.Time `json:"expiry_date" gorm:"type:date;not null;index"`
	QuantityTotal     int       `json:"quantity_total" gorm:"not null"`
	QuantityAvailable int       `json:"quantity_available" gorm:"not null"`
	PurchasePrice     float64   `json:"purchase_price" gorm:"type:decimal(10,2);default:0"`
	SellingPrice      float64   `json:"selling_price" gorm:"type:decimal(10,2);default:0"`

	// Relationships
	Product  Product         `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Retailer RetailerProfile `json:"retailer,omitempty" gorm:"foreignKey:RetailerID"`
}
