// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pantrypal/pantrypal-backend/internal/services"
	"github.com/pantrypal/pantrypal-backend/internal/store"
	"github.com/pantrypal/pantrypal-backend/internal/utils"
)

// handleServiceError maps service and store errors onto HTTP responses.
// Unknown errors are logged and surface as a generic 500.
func handleServiceError(c *gin.Context, err error) {
	var stockErr *store.StockError
	switch {
	case errors.As(err, &stockErr):
		code := "INSUFFICIENT_STOCK"
		if stockErr.Kind == store.OutOfStock {
			code = "OUT_OF_STOCK"
		}
		utils.ErrorResponse(c, http.StatusBadRequest, code, stockErr.Error(), gin.H{
			"product_id": stockErr.ProductID,
			"requested":  stockErr.Requested,
			"available":  stockErr.Available,
		})
	case errors.Is(err, store.ErrInvalidInput):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, store.ErrInvalidClaimCode):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_CLAIM_CODE", "Invalid claim code", nil)
	case errors.Is(err, store.ErrAlreadyClaimed):
		utils.ErrorResponse(c, http.StatusBadRequest, "ALREADY_CLAIMED", "This purchase has already been claimed", nil)
	case errors.Is(err, store.ErrDuplicate):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, store.ErrConflict):
		utils.ConflictResponse(c, "The items were modified concurrently, please retry")
	case errors.Is(err, store.ErrNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, err.Error())
	default:
		logrus.WithError(err).Error("Unhandled service error")
		utils.InternalErrorResponse(c, "Internal server error")
	}
}
