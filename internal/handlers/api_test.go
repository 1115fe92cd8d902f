// internal/handlers/api_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/pantrypal/pantrypal-backend/internal/middleware"
	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/services"
	"github.com/pantrypal/pantrypal-backend/internal/store/memstore"
)

type APITestSuite struct {
	suite.Suite
	router        *gin.Engine
	retailerToken string
	customerToken string
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	st := memstore.New()
	authService := services.NewAuthService(st, 24)
	productService := services.NewProductService(st, nil)
	inventoryService := services.NewInventoryService(st)
	saleService := services.NewSaleService(st)
	claimService := services.NewClaimService(st)
	customerService := services.NewCustomerService(st)
	receiptService := services.NewReceiptService(st)

	authHandler := NewAuthHandler(authService)
	productHandler := NewProductHandler(productService)
	inventoryHandler := NewInventoryHandler(inventoryService)
	saleHandler := NewSaleHandler(saleService, receiptService)
	claimHandler := NewClaimHandler(claimService)
	customerHandler := NewCustomerHandler(customerService)

	r := gin.New()
	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		retail := v1.Group("")
		retail.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleRetailer))
		{
			retail.GET("/products/search", productHandler.Search)
			retail.GET("/products/barcode/:barcode", productHandler.GetByBarcode)
			retail.POST("/products", productHandler.CreateProduct)
			retail.POST("/inventory", inventoryHandler.AddStock)
			retail.GET("/inventory", inventoryHandler.GetInventory)
			retail.POST("/sales", saleHandler.CreateSale)
			retail.GET("/sales", saleHandler.GetSaleHistory)
			retail.GET("/sales/:id/receipt", saleHandler.GetReceipt)
		}

		customer := v1.Group("")
		customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
		{
			customer.POST("/claims", claimHandler.ClaimPurchase)
			customer.GET("/customer/items", customerHandler.ListItems)
			customer.PUT("/customer/items/:id/use", customerHandler.MarkUsed)
		}
	}
	s.router = r

	s.retailerToken = s.register(gin.H{
		"name": "Shop Owner", "phone": "9000000001", "password": "secret1",
		"role": "retailer", "shop_name": "Fresh Mart",
	})
	s.customerToken = s.register(gin.H{
		"name": "Customer One", "phone": "9000000003", "password": "secret1",
		"role": "customer",
	})
}

func (s *APITestSuite) register(body gin.H) string {
	w := s.request("POST", "/v1/auth/register", body, "")
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().NotEmpty(resp.Data.Token)
	return resp.Data.Token
}

func (s *APITestSuite) request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) dataField(w *httptest.ResponseRecorder, key string) interface{} {
	var resp map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp["data"].(map[string]interface{})
	return data[key]
}

func (s *APITestSuite) createProductWithStock(barcode string, qty int) string {
	w := s.request("POST", "/v1/products", gin.H{
		"barcode": barcode, "product_name": "Milk 1L", "unit": "1 L",
	}, s.retailerToken)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	productID, _ := s.dataField(w, "id").(string)
	s.Require().NotEmpty(productID)

	w = s.request("POST", "/v1/inventory", gin.H{
		"product_id": productID, "mfd_date": "2026-08-01", "expiry_date": "2027-08-01",
		"quantity": qty, "purchase_price": 20, "selling_price": 30,
	}, s.retailerToken)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return productID
}

func (s *APITestSuite) TestAuthRequired() {
	w := s.request("GET", "/v1/inventory", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APITestSuite) TestRoleEnforcement() {
	w := s.request("POST", "/v1/products", gin.H{
		"barcode": "5000000001", "product_name": "Soap",
	}, s.customerToken)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request("POST", "/v1/claims", gin.H{"claim_code": "123456"}, s.retailerToken)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *APITestSuite) TestBarcodeLookupNotFound() {
	w := s.request("GET", "/v1/products/barcode/0000000000", nil, s.retailerToken)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestDuplicateBarcodeConflict() {
	s.createProductWithStock("5000000002", 10)
	w := s.request("POST", "/v1/products", gin.H{
		"barcode": "5000000002", "product_name": "Milk 1L Again",
	}, s.retailerToken)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *APITestSuite) TestSaleAndClaimFlow() {
	productID := s.createProductWithStock("5000000003", 10)

	w := s.request("POST", "/v1/sales", gin.H{
		"items": []gin.H{{"product_id": productID, "quantity": 4}},
	}, s.retailerToken)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	claimCode, _ := s.dataField(w, "claim_code").(string)
	s.Require().Len(claimCode, 6)
	s.Equal(120.0, s.dataField(w, "total_amount"))

	w = s.request("POST", "/v1/claims", gin.H{"claim_code": claimCode}, s.customerToken)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal(1.0, s.dataField(w, "items_count"))

	// Second claim of the same code fails.
	w = s.request("POST", "/v1/claims", gin.H{"claim_code": claimCode}, s.customerToken)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request("GET", "/v1/customer/items", nil, s.customerToken)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestSaleInsufficientStock() {
	productID := s.createProductWithStock("5000000004", 3)

	w := s.request("POST", "/v1/sales", gin.H{
		"items": []gin.H{{"product_id": productID, "quantity": 5}},
	}, s.retailerToken)
	s.Require().Equal(http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("INSUFFICIENT_STOCK", resp.Error.Code)
}

func (s *APITestSuite) TestReceiptDownload() {
	productID := s.createProductWithStock("5000000005", 10)

	w := s.request("POST", "/v1/sales", gin.H{
		"items": []gin.H{{"product_id": productID, "quantity": 2}},
	}, s.retailerToken)
	s.Require().Equal(http.StatusCreated, w.Code)
	saleID, _ := s.dataField(w, "sale_id").(string)

	w = s.request("GET", fmt.Sprintf("/v1/sales/%s/receipt", saleID), nil, s.retailerToken)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("application/pdf", w.Header().Get("Content-Type"))
	s.True(bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
