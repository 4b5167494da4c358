package controllers

import (
	"net/http"

	"hotel-guest-services/services"
	"hotel-guest-services/utils"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	Settings *services.SettingsService
}

func NewSettingsController(settings *services.SettingsService) *SettingsController {
	return &SettingsController{Settings: settings}
}

// GetHotelSettings (GET /api/settings/hotel) — lazily creates the row with
// defaults on first read.
func (sc *SettingsController) GetHotelSettings(c *gin.Context) {
	settings, err := sc.Settings.GetOrInit()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, settings)
}

// UpdateHotelSettings (PUT /api/settings/hotel) — admin only.
func (sc *SettingsController) UpdateHotelSettings(c *gin.Context) {
	var payload services.SettingsUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	settings, err := sc.Settings.Update(payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, settings)
}
