// internal/handlers/claim.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pantrypal/pantrypal-backend/internal/services"
	"github.com/pantrypal/pantrypal-backend/internal/utils"
)

type ClaimHandler struct {
	claimService *services.ClaimService
}

func NewClaimHandler(claimService *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
	}
}

type claimRequest struct {
	ClaimCode string `json:"claim_code"`
}

// POST /v1/claims
func (h *ClaimHandler) ClaimPurchase(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req claimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	count, err := h.claimService.ClaimPurchase(c.Request.Context(), userID, req.ClaimCode)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     "Purchase claimed successfully",
		"items_count": count,
	})
}
