package controllers

import (
	"net/http"

	"hotel-guest-services/config"
	"hotel-guest-services/models"
	"hotel-guest-services/utils"

	"github.com/gin-gonic/gin"
)

// Services catalog

func GetServices(c *gin.Context) {
	var services []models.Service
	q := config.DB
	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	q.Order("name ASC").Find(&services)
	c.JSON(http.StatusOK, services)
}

func CreateService(c *gin.Context) {
	var service models.Service
	if err := c.ShouldBindJSON(&service); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if service.Name == "" || service.Price < 0 {
		utils.JSONError(c, http.StatusBadRequest, "name is required and price must be non-negative")
		return
	}
	service.Active = true

	if err := config.DB.Create(&service).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create service")
		return
	}
	c.JSON(http.StatusCreated, service)
}

func UpdateService(c *gin.Context) {
	id := c.Param("id")
	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	delete(updateData, "id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	if err := config.DB.Model(&models.Service{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": id})
}

func DeleteService(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.Service{}, id).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// Food menu

func GetFoodMenu(c *gin.Context) {
	var items []models.FoodMenuItem
	q := config.DB
	if c.Query("available") == "true" {
		q = q.Where("available = ?", true)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	q.Order("category ASC, name ASC").Find(&items)
	c.JSON(http.StatusOK, items)
}

func CreateFoodMenuItem(c *gin.Context) {
	var item models.FoodMenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if item.Name == "" || item.Price < 0 {
		utils.JSONError(c, http.StatusBadRequest, "name is required and price must be non-negative")
		return
	}
	item.Available = true

	if err := config.DB.Create(&item).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create food item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func UpdateFoodMenuItem(c *gin.Context) {
	id := c.Param("id")
	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	delete(updateData, "id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	if err := config.DB.Model(&models.FoodMenuItem{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": id})
}

func DeleteFoodMenuItem(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.FoodMenuItem{}, id).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
