package controllers

import (
	"net/http"

	"hotel-guest-services/services"
	"hotel-guest-services/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	Guests *services.GuestService
}

func NewGuestController(guests *services.GuestService) *GuestController {
	return &GuestController{Guests: guests}
}

// CheckIn (POST /api/guests/checkin) — staff register an arriving guest and
// occupy a room.
func (gc *GuestController) CheckIn(c *gin.Context) {
	var input services.CheckInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	guest, err := gc.Guests.CheckIn(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, guest)
}

// Checkout (POST /api/guests/:id/checkout)
func (gc *GuestController) Checkout(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	guest, err := gc.Guests.Checkout(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, guest)
}

// GetGuests (GET /api/guests?active=)
func (gc *GuestController) GetGuests(c *gin.Context) {
	guests, err := gc.Guests.List(c.Query("active") == "true")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

// GetGuest (GET /api/guests/:id)
func (gc *GuestController) GetGuest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	guest, err := gc.Guests.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

// DeleteGuest (DELETE /api/guests/:id) — cascades orders and invoices.
func (gc *GuestController) DeleteGuest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := gc.Guests.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
