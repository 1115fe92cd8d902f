// internal/services/product_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pantrypal/pantrypal-backend/internal/cache"
	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/store"
	"github.com/pantrypal/pantrypal-backend/internal/utils"
)

const productSearchLimit = 10

type ProductService struct {
	store store.Store
	cache *cache.Cache
}

type CreateProductRequest struct {
	Barcode  string `json:"barcode" validate:"required,min=6,max=32"`
	Name     string `json:"product_name" validate:"required,min=2,max=200"`
	Brand    string `json:"brand" validate:"max=100"`
	Category string `json:"category" validate:"max=100"`
	Unit     string `json:"unit" validate:"max=50"`
}

func NewProductService(store store.Store, cache *cache.Cache) *ProductService {
	return &ProductService{store: store, cache: cache}
}

func productCacheKey(barcode string) string {
	return "product:barcode:" + barcode
}

func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}

	product := &models.Product{
		Barcode:  strings.TrimSpace(req.Barcode),
		Name:     strings.TrimSpace(req.Name),
		Brand:    req.Brand,
		Category: req.Category,
		Unit:     req.Unit,
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, productCacheKey(product.Barcode))
	return product, nil
}

// GetByBarcode looks a product up by its barcode, consulting the cache first.
func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, fmt.Errorf("%w: barcode is required", store.ErrInvalidInput)
	}

	var cached models.Product
	if s.cache.GetJSON(ctx, productCacheKey(barcode), &cached) {
		return &cached, nil
	}

	product, err := s.store.GetProductByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, productCacheKey(barcode), product)
	return product, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.store.GetProductByID(ctx, id)
}

// Search matches product names case-insensitively, capped at ten results.
func (s *ProductService) Search(ctx context.Context, query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", store.ErrInvalidInput)
	}
	return s.store.SearchProductsByName(ctx, query, productSearchLimit)
}
