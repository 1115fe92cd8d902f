// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Enums

// Role is the closed set of account roles. Authorization checks switch on
// this type exhaustively instead of comparing free-form strings.
type Role string

const (
	RoleRetailer Role = "retailer"
	RoleCustomer Role = "customer"
)

// ParseRole maps a wire-format role string onto the closed Role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleRetailer:
		return RoleRetailer, true
	case RoleCustomer:
		return RoleCustomer, true
	default:
		return "", false
	}
}

type ItemStatus string

const (
	ItemStatusActive ItemStatus = "ACTIVE"
	ItemStatusUsed   ItemStatus = "USED"
)
