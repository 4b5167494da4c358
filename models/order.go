package models

import "time"

// OrderStatus represents all possible states of a guest order
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderAccepted   OrderStatus = "ACCEPTED"
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

type OrderType string

const (
	OrderTypeFood    OrderType = "FOOD"
	OrderTypeService OrderType = "SERVICE"
)

type Order struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	GuestID uint  `gorm:"index;not null" json:"guest_id"`
	Guest   Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`

	OrderType   OrderType   `gorm:"size:20" json:"order_type"`
	Status      OrderStatus `gorm:"size:20;default:'PENDING';index" json:"status"`
	TotalAmount float64     `gorm:"type:decimal(10,2)" json:"total_amount"`
	Notes       string      `gorm:"type:text" json:"notes"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem snapshots the catalog price at order time; lines are immutable
// after creation. Exactly one of ServiceID / FoodMenuID is set.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"index;not null" json:"order_id"`

	ServiceID  *uint         `gorm:"index" json:"service_id,omitempty"`
	Service    *Service      `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	FoodMenuID *uint         `gorm:"index" json:"food_menu_id,omitempty"`
	FoodMenu   *FoodMenuItem `gorm:"foreignKey:FoodMenuID" json:"food_menu,omitempty"`

	Quantity int     `gorm:"not null" json:"quantity"`
	Price    float64 `gorm:"type:decimal(10,2);not null" json:"price"` // unit price snapshot
	Subtotal float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`

	CreatedAt time.Time `json:"created_at"`
}
