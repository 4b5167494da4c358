package controllers

import (
	"net/http"
	"strings"

	"hotel-guest-services/config"
	"hotel-guest-services/models"
	"hotel-guest-services/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func GetStaff(c *gin.Context) {
	var staff []models.Staff
	config.DB.Order("created_at DESC").Find(&staff)
	c.JSON(http.StatusOK, staff)
}

type createStaffPayload struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

func CreateStaff(c *gin.Context) {
	var payload createStaffPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "full_name, email and password are required")
		return
	}

	role := strings.ToUpper(strings.TrimSpace(payload.Role))
	if role == "" {
		role = models.RoleStaff
	}
	if role != models.RoleStaff && role != models.RoleAdmin {
		utils.JSONError(c, http.StatusBadRequest, "role must be STAFF or ADMIN")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	staff := models.Staff{
		FullName: strings.TrimSpace(payload.FullName),
		Email:    strings.TrimSpace(payload.Email),
		Password: string(hash),
		Role:     role,
	}
	if err := config.DB.Create(&staff).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") || strings.Contains(strings.ToLower(err.Error()), "unique") {
			utils.JSONError(c, http.StatusConflict, "email already registered")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create staff")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, staff)
}

func DeleteStaff(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.Staff{}, id).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
