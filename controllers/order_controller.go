package controllers

import (
	"net/http"
	"strconv"

	"hotel-guest-services/middleware"
	"hotel-guest-services/models"
	"hotel-guest-services/services"
	"hotel-guest-services/statemachine"
	"hotel-guest-services/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

type createOrderPayload struct {
	Items []services.OrderItemInput `json:"items" binding:"required"`
	Notes string                    `json:"notes"`
}

// CreateOrder (POST /api/orders) — guest places an order for themselves.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var payload createOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	guestID := middleware.GetUserID(c)
	order, err := oc.Orders.CreateOrder(guestID, payload.Items, payload.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, order)
}

// GetOrders (GET /api/orders) — staff see all, guests their own.
func (oc *OrderController) GetOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))

	var guestFilter *uint
	if !middleware.IsStaff(c) {
		id := middleware.GetUserID(c)
		guestFilter = &id
	} else if raw := c.Query("guestId"); raw != "" {
		if id64, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(id64)
			guestFilter = &id
		}
	}

	orders, err := oc.Orders.List(guestFilter, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, orders)
}

// GetOrder (GET /api/orders/:id) — owner or staff.
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := oc.Orders.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !middleware.IsStaff(c) && order.GuestID != middleware.GetUserID(c) {
		utils.JSONError(c, http.StatusForbidden, "not your order")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, order)
}

type orderStatusPayload struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus (PATCH /api/orders/:id/status) — staff advance or
// cancel an order.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var payload orderStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}

	order, err := oc.Orders.SetStatus(id, payload.Status, statemachine.ActorStaff)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, order)
}

// CancelOrder (POST /api/orders/:id/cancel) — guest cancels their own
// PENDING order.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := oc.Orders.CancelByGuest(id, middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, order)
}
