// internal/handlers/sale.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantrypal/pantrypal-backend/internal/services"
	"github.com/pantrypal/pantrypal-backend/internal/utils"
)

type SaleHandler struct {
	saleService    *services.SaleService
	receiptService *services.ReceiptService
}

func NewSaleHandler(saleService *services.SaleService, receiptService *services.ReceiptService) *SaleHandler {
	return &SaleHandler{
		saleService:    saleService,
		receiptService: receiptService,
	}
}

// POST /v1/sales
func (h *SaleHandler) CreateSale(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.saleService.CreateSale(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// GET /v1/sales
func (h *SaleHandler) GetSaleHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	sales, total, err := h.saleService.GetSaleHistory(c.Request.Context(), userID, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(sales, total, params))
}

// GET /v1/sales/:id/receipt
func (h *SaleHandler) GetReceipt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid sale id", nil)
		return
	}

	pdf, err := h.receiptService.GenerateReceipt(c.Request.Context(), userID, saleID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", saleID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
