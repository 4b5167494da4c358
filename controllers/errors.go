package controllers

import (
	"errors"
	"log"
	"net/http"

	"hotel-guest-services/services"
	"hotel-guest-services/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors onto the HTTP taxonomy. Unknown
// errors become a generic 500; details stay in the server log.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGuestNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrInvoiceNotFound),
		errors.Is(err, services.ErrRoomNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrOrderNotPending),
		errors.Is(err, services.ErrInvoiceFinalized),
		errors.Is(err, services.ErrRoomUnavailable),
		errors.Is(err, services.ErrDuplicatePhone):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrOrderNotComplete),
		errors.Is(err, services.ErrNoEligibleOrders),
		errors.Is(err, services.ErrGuestInactive):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("internal error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}
