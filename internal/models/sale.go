// internal/models/sale.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale is a completed checkout. TotalAmount is written once, after all line
// items have been allocated. IsClaimed transitions false -> true exactly once.
type Sale struct {
	BaseModel
	RetailerID  uuid.UUID `json:"retailer_id" gorm:"type:uuid;not null;index"`
	TotalAmount float64   `json:"total_amount" gorm:"type:decimal(12,2);not null;default:0"`
	ClaimCode   string    `json:"claim_code" gorm:"uniqueIndex;size:6;not null"`
	IsClaimed   bool      `json:"is_claimed" gorm:"not null;default:false"`

	// Relationships
	Retailer RetailerProfile `json:"retailer,omitempty" gorm:"foreignKey:RetailerID"`
	Items    []SaleItem      `json:"items,omitempty" gorm:"foreignKey:SaleID"`
}

// SaleItem records one allocation drawn from a single batch. Price and dates
// are snapshots taken at sale time; later batch edits do not affect them.
type SaleItem struct {
	BaseModel
	SaleID       uuid.UUID `json:"sale_id" gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	BatchID      uuid.UUID `json:"batch_id" gorm:"type:uuid;not null;index"`
	Quantity     int       `json:"quantity" gorm:"not null"`
	PricePerUnit float64   `json:"price_per_unit" gorm:"type:decimal(10,2);not null"`
	TotalPrice   float64   `json:"total_price" gorm:"type:decimal(12,2);not null"`
	MfdDate      time.Time `json:"mfd_date" gorm:"type:date;not null"`
	ExpiryDate   time.Time `json:"expiry_date" gorm:"type:date;not null"`

	// Relationships
	Sale    Sale    `json:"sale,omitempty" gorm:"foreignKey:SaleID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Batch   Batch   `json:"batch,omitempty" gorm:"foreignKey:BatchID"`
}
