package services

import (
	"errors"
	"testing"

	"hotel-guest-services/models"
	"hotel-guest-services/statemachine"
)

func TestCreateOrderTotalsAndType(t *testing.T) {
	db := newTestDB(t)
	guest := seedGuest(t, db, "Asha Rao", "9000000001", "101")
	svc, food, drink := seedCatalog(t, db)

	orders := NewOrderService(db, nil)

	tests := []struct {
		name      string
		items     []OrderItemInput
		wantType  models.OrderType
		wantTotal float64
	}{
		{
			name: "allFoodDerivesFood",
			items: []OrderItemInput{
				{FoodMenuID: &food.ID, Quantity: 2},
				{FoodMenuID: &drink.ID, Quantity: 1},
			},
			wantType:  models.OrderTypeFood,
			wantTotal: 250,
		},
		{
			name:      "allServicesDerivesService",
			items:     []OrderItemInput{{ServiceID: &svc.ID, Quantity: 3}},
			wantType:  models.OrderTypeService,
			wantTotal: 300,
		},
		{
			name: "mixedDefaultsToFood",
			items: []OrderItemInput{
				{ServiceID: &svc.ID, Quantity: 1},
				{FoodMenuID: &food.ID, Quantity: 1},
			},
			wantType:  models.OrderTypeFood,
			wantTotal: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := orders.CreateOrder(guest.ID, tt.items, "")
			if err != nil {
				t.Fatalf("CreateOrder() error = %v", err)
			}
			if order.Status != models.OrderPending {
				t.Errorf("status = %s, want PENDING", order.Status)
			}
			if order.OrderType != tt.wantType {
				t.Errorf("orderType = %s, want %s", order.OrderType, tt.wantType)
			}
			if order.TotalAmount != tt.wantTotal {
				t.Errorf("totalAmount = %.2f, want %.2f", order.TotalAmount, tt.wantTotal)
			}

			var sum float64
			for _, item := range order.Items {
				if item.Subtotal != item.Price*float64(item.Quantity) {
					t.Errorf("item subtotal = %.2f, want price*qty = %.2f", item.Subtotal, item.Price*float64(item.Quantity))
				}
				sum += item.Subtotal
			}
			if sum != order.TotalAmount {
				t.Errorf("sum of item subtotals = %.2f, want totalAmount %.2f", sum, order.TotalAmount)
			}
		})
	}
}

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)
	guest := seedGuest(t, db, "Asha Rao", "9000000001", "101")
	svc, food, _ := seedCatalog(t, db)

	inactive := seedGuest(t, db, "Gone Guest", "9000000002", "102")
	if err := db.Model(&models.Guest{}).Where("id = ?", inactive.ID).Update("active", false).Error; err != nil {
		t.Fatalf("failed to deactivate guest: %v", err)
	}

	orders := NewOrderService(db, nil)

	tests := []struct {
		name    string
		guestID uint
		items   []OrderItemInput
		wantErr error
	}{
		{
			name:    "noItems",
			guestID: guest.ID,
			items:   nil,
			wantErr: ErrValidation,
		},
		{
			name:    "neitherReference",
			guestID: guest.ID,
			items:   []OrderItemInput{{Quantity: 1}},
			wantErr: ErrValidation,
		},
		{
			name:    "bothReferences",
			guestID: guest.ID,
			items:   []OrderItemInput{{ServiceID: &svc.ID, FoodMenuID: &food.ID, Quantity: 1}},
			wantErr: ErrValidation,
		},
		{
			name:    "zeroQuantity",
			guestID: guest.ID,
			items:   []OrderItemInput{{FoodMenuID: &food.ID, Quantity: 0}},
			wantErr: ErrValidation,
		},
		{
			name:    "unknownCatalogID",
			guestID: guest.ID,
			items:   []OrderItemInput{{FoodMenuID: uintPtr(9999), Quantity: 1}},
			wantErr: ErrValidation,
		},
		{
			name:    "unknownGuest",
			guestID: 9999,
			items:   []OrderItemInput{{FoodMenuID: &food.ID, Quantity: 1}},
			wantErr: ErrGuestNotFound,
		},
		{
			name:    "checkedOutGuest",
			guestID: inactive.ID,
			items:   []OrderItemInput{{FoodMenuID: &food.ID, Quantity: 1}},
			wantErr: ErrGuestInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := orders.CreateOrder(tt.guestID, tt.items, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateOrder() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetStatusLifecycle(t *testing.T) {
	db := newTestDB(t)
	guest := seedGuest(t, db, "Asha Rao", "9000000001", "101")
	_, food, _ := seedCatalog(t, db)

	settings := NewSettingsService(db)
	invoices := NewInvoiceService(db, settings)
	orders := NewOrderService(db, invoices)

	order, err := orders.CreateOrder(guest.ID, []OrderItemInput{{FoodMenuID: &food.ID, Quantity: 2}}, "")
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	for _, next := range []models.OrderStatus{models.OrderAccepted, models.OrderInProgress, models.OrderCompleted} {
		order, err = orders.SetStatus(order.ID, next, statemachine.ActorStaff)
		if err != nil {
			t.Fatalf("SetStatus(%s) error = %v", next, err)
		}
		if order.Status != next {
			t.Fatalf("status = %s, want %s", order.Status, next)
		}
	}

	// completion fired invoice generation
	var count int64
	db.Model(&models.Invoice{}).Where("guest_id = ?", guest.ID).Count(&count)
	if count != 1 {
		t.Errorf("invoices after completion = %d, want 1", count)
	}

	// terminal state is immutable
	if _, err := orders.SetStatus(order.ID, models.OrderPending, statemachine.ActorStaff); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("COMPLETED->PENDING error = %v, want %v", err, ErrInvalidStatus)
	}
}

func TestSetStatusRejectsIllegalJumps(t *testing.T) {
	db := newTestDB(t)
	guest := seedGuest(t, db, "Asha Rao", "9000000001", "101")
	_, food, _ := seedCatalog(t, db)
	orders := NewOrderService(db, nil)

	tests := []struct {
		name  string
		next  models.OrderStatus
		actor string
	}{
		{name: "skipToInProgress", next: models.OrderInProgress, actor: statemachine.ActorStaff},
		{name: "skipToCompleted", next: models.OrderCompleted, actor: statemachine.ActorStaff},
		{name: "guestCannotAccept", next: models.OrderAccepted, actor: statemachine.ActorGuest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := orders.CreateOrder(guest.ID, []OrderItemInput{{FoodMenuID: &food.ID, Quantity: 1}}, "")
			if err != nil {
				t.Fatalf("CreateOrder() error = %v", err)
			}
			if _, err := orders.SetStatus(order.ID, tt.next, tt.actor); !errors.Is(err, ErrInvalidStatus) {
				t.Errorf("SetStatus() error = %v, want %v", err, ErrInvalidStatus)
			}

			reloaded, err := orders.GetByID(order.ID)
			if err != nil {
				t.Fatalf("GetByID() error = %v", err)
			}
			if reloaded.Status != models.OrderPending {
				t.Errorf("status after rejected transition = %s, want PENDING", reloaded.Status)
			}
		})
	}
}

func TestCancelByGuest(t *testing.T) {
	db := newTestDB(t)
	owner := seedGuest(t, db, "Asha Rao", "9000000001", "101")
	other := seedGuest(t, db, "Vik Shetty", "9000000002", "102")
	_, food, _ := seedCatalog(t, db)
	orders := NewOrderService(db, nil)

	t.Run("pendingOwnOrder", func(t *testing.T) {
		order, _ := orders.CreateOrder(owner.ID, []OrderItemInput{{FoodMenuID: &food.ID, Quantity: 1}}, "")
		cancelled, err := orders.CancelByGuest(order.ID, owner.ID)
		if err != nil {
			t.Fatalf("CancelByGuest() error = %v", err)
		}
		if cancelled.Status != models.OrderCancelled {
			t.Errorf("status = %s, want CANCELLED", cancelled.Status)
		}
	})

	t.Run("notOwner", func(t *testing.T) {
		order, _ := orders.CreateOrder(owner.ID, []OrderItemInput{{FoodMenuID: &food.ID, Quantity: 1}}, "")
		if _, err := orders.CancelByGuest(order.ID, other.ID); !errors.Is(err, ErrForbidden) {
			t.Errorf("CancelByGuest() error = %v, want %v", err, ErrForbidden)
		}
	})

	t.Run("notPendingLeavesStatusUnchanged", func(t *testing.T) {
		order, _ := orders.CreateOrder(owner.ID, []OrderItemInput{{FoodMenuID: &food.ID, Quantity: 1}}, "")
		if _, err := orders.SetStatus(order.ID, models.OrderAccepted, statemachine.ActorStaff); err != nil {
			t.Fatalf("SetStatus() error = %v", err)
		}
		if _, err := orders.CancelByGuest(order.ID, owner.ID); !errors.Is(err, ErrOrderNotPending) {
			t.Errorf("CancelByGuest() error = %v, want %v", err, ErrOrderNotPending)
		}

		reloaded, _ := orders.GetByID(order.ID)
		if reloaded.Status != models.OrderAccepted {
			t.Errorf("status = %s, want ACCEPTED", reloaded.Status)
		}
	})
}
