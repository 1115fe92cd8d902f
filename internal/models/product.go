// internal/models/product.go
package models

type Product struct {
	BaseModel
	Barcode  string `json:"barcode" gorm:"uniqueIndex;size:64;not null"`
	Name     string `json:"product_name" gorm:"size:255;not null;index"`
	Brand    string `json:"brand" gorm:"size:100"`
	Category string `json:"category" gorm:"size:100;index"`
	Unit     string `json:"unit" gorm:"size:50"`

	// Relationships
	Batches []Batch `json:"batches,omitempty" gorm:"foreignKey:ProductID"`
}
