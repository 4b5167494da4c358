package controllers

import (
	"net/http"
	"strings"

	"hotel-guest-services/config"
	"hotel-guest-services/middleware"
	"hotel-guest-services/models"
	"hotel-guest-services/services"
	"hotel-guest-services/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a staff member and issues a JWT.
func Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	var staff models.Staff
	if err := config.DB.Where("email = ?", strings.TrimSpace(payload.Email)).First(&staff).Error; err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(payload.Password)); err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := middleware.GenerateToken(staff.ID, staff.FullName, staff.Role)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":        staff.ID,
			"full_name": staff.FullName,
			"email":     staff.Email,
			"role":      staff.Role,
		},
	})
}

type guestLoginPayload struct {
	Phone      string `json:"phone" binding:"required"`
	RoomNumber string `json:"roomNumber" binding:"required"`
}

// GuestLoginHandler authenticates a checked-in guest by phone + room number.
type GuestLoginHandler struct {
	Guests *services.GuestService
}

func (h *GuestLoginHandler) GuestLogin(c *gin.Context) {
	var payload guestLoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "phone and roomNumber are required")
		return
	}

	guest, err := h.Guests.FindByPhoneAndRoom(payload.Phone, payload.RoomNumber)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := middleware.GenerateToken(guest.ID, guest.FullName, models.RoleGuest)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"guest": guest,
	})
}
