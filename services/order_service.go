package services

import (
	"errors"
	"fmt"
	"log"

	"hotel-guest-services/models"
	"hotel-guest-services/statemachine"

	"gorm.io/gorm"
)

// OrderService wraps *gorm.DB with the order lifecycle logic. Invoices is
// consulted when an order reaches COMPLETED; invoice failure never rolls the
// status update back.
type OrderService struct {
	DB       *gorm.DB
	Invoices *InvoiceService
}

func NewOrderService(db *gorm.DB, invoices *InvoiceService) *OrderService {
	return &OrderService{DB: db, Invoices: invoices}
}

// OrderItemInput references exactly one catalog entry.
type OrderItemInput struct {
	ServiceID  *uint `json:"service_id"`
	FoodMenuID *uint `json:"food_menu_id"`
	Quantity   int   `json:"quantity"`
}

// CreateOrder snapshots current catalog prices into line items and persists
// the order as PENDING. Order type derives from the items: all services ->
// SERVICE, otherwise FOOD (mixed orders default to FOOD).
func (s *OrderService) CreateOrder(guestID uint, items []OrderItemInput, notes string) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one item", ErrValidation)
	}

	var guest models.Guest
	if err := s.DB.First(&guest, guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("db error checking guest: %w", err)
	}
	if !guest.Active {
		return nil, ErrGuestInactive
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	allServices := true
	total := 0.0

	for i, in := range items {
		if (in.ServiceID == nil) == (in.FoodMenuID == nil) {
			return nil, fmt.Errorf("%w: item %d must reference exactly one of service_id or food_menu_id", ErrValidation, i)
		}
		if in.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d quantity must be a positive integer", ErrValidation, i)
		}

		item := models.OrderItem{Quantity: in.Quantity}
		switch {
		case in.ServiceID != nil:
			var svc models.Service
			if err := s.DB.First(&svc, *in.ServiceID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("%w: service %d not found", ErrValidation, *in.ServiceID)
				}
				return nil, fmt.Errorf("db error checking service %d: %w", *in.ServiceID, err)
			}
			if !svc.Active {
				return nil, fmt.Errorf("%w: service %q is not available", ErrValidation, svc.Name)
			}
			item.ServiceID = in.ServiceID
			item.Price = svc.Price
		default:
			var food models.FoodMenuItem
			if err := s.DB.First(&food, *in.FoodMenuID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("%w: food item %d not found", ErrValidation, *in.FoodMenuID)
				}
				return nil, fmt.Errorf("db error checking food item %d: %w", *in.FoodMenuID, err)
			}
			if !food.Available {
				return nil, fmt.Errorf("%w: food item %q is not available", ErrValidation, food.Name)
			}
			item.FoodMenuID = in.FoodMenuID
			item.Price = food.Price
			allServices = false
		}

		item.Subtotal = item.Price * float64(in.Quantity)
		total += item.Subtotal
		orderItems = append(orderItems, item)
	}

	orderType := models.OrderTypeFood
	if allServices {
		orderType = models.OrderTypeService
	}

	order := models.Order{
		GuestID:     guestID,
		OrderType:   orderType,
		Status:      models.OrderPending,
		TotalAmount: total,
		Notes:       notes,
		Items:       orderItems,
	}

	if err := s.DB.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return s.GetByID(order.ID)
}

// SetStatus moves an order along its lifecycle. Terminal orders are
// immutable; other writes must pass the transition table. Reaching
// COMPLETED triggers invoice generation best-effort: a failure is logged
// and the status update still succeeds.
func (s *OrderService) SetStatus(orderID uint, next models.OrderStatus, actor string) (*models.Order, error) {
	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if err := statemachine.CanTransition(order.Status, next, actor); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, err.Error())
	}

	if err := s.DB.Model(&order).Update("status", next).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = next

	if next == models.OrderCompleted && s.Invoices != nil {
		if _, err := s.Invoices.GenerateForOrder(order.ID); err != nil {
			// completed-but-uninvoiced orders are picked up by reconciliation
			log.Printf("warning: auto-invoice for order %d failed: %v", order.ID, err)
		}
	}

	return s.GetByID(order.ID)
}

// CancelByGuest lets a guest cancel their own order while it is still
// PENDING.
func (s *OrderService) CancelByGuest(orderID, guestID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if order.GuestID != guestID {
		return nil, ErrForbidden
	}
	if order.Status != models.OrderPending {
		return nil, ErrOrderNotPending
	}

	if err := s.DB.Model(&order).Update("status", models.OrderCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	return s.GetByID(order.ID)
}

func (s *OrderService) GetByID(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.
		Preload("Items").
		Preload("Items.Service").
		Preload("Items.FoodMenu").
		Preload("Guest").
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &order, nil
}

// List returns orders newest first, optionally filtered by guest and status.
func (s *OrderService) List(guestID *uint, status models.OrderStatus) ([]models.Order, error) {
	q := s.DB.
		Preload("Items").
		Preload("Guest").
		Order("created_at DESC")
	if guestID != nil {
		q = q.Where("guest_id = ?", *guestID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}
