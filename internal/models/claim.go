// internal/models/claim.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerClaim links a sale to the customer who redeemed its claim code.
// At most one exists per sale; the sale's IsClaimed flag enforces this.
type CustomerClaim struct {
	BaseModel
	SaleID     uuid.UUID `json:"sale_id" gorm:"type:uuid;uniqueIndex;not null"`
	CustomerID uuid.UUID `json:"customer_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Sale     Sale `json:"sale,omitempty" gorm:"foreignKey:SaleID"`
	Customer User `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

// CustomerItem is the customer-facing view of one purchased, expiry-tracked
// unit. Created when a claim succeeds, one per sale item.
type CustomerItem struct {
	BaseModel
	CustomerID   uuid.UUID  `json:"customer_id" gorm:"type:uuid;not null;index"`
	SaleItemID   uuid.UUID  `json:"sale_item_id" gorm:"type:uuid;not null;index"`
	Status       ItemStatus `json:"status" gorm:"type:varchar(10);not null;default:'ACTIVE'"`
	ReminderDate *time.Time `json:"reminder_date,omitempty" gorm:"type:date"`
	ReminderTime string     `json:"reminder_time,omitempty" gorm:"size:8"`

	// Relationships
	Customer User     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	SaleItem SaleItem `json:"sale_item,omitempty" gorm:"foreignKey:SaleItemID"`
}
