package models

import "time"

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoicePending   InvoiceStatus = "PENDING"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// Payable reports whether mark-paid / cancel are still allowed.
func (s InvoiceStatus) Payable() bool {
	return s == InvoiceDraft || s == InvoicePending
}

type Invoice struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	GuestID uint  `gorm:"index;not null" json:"guest_id"`
	Guest   Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`

	InvoiceNumber string `gorm:"uniqueIndex;size:64;not null" json:"invoice_number"`

	Subtotal float64 `gorm:"type:decimal(10,2)" json:"subtotal"`
	Tax      float64 `gorm:"type:decimal(10,2)" json:"tax"`
	Total    float64 `gorm:"type:decimal(10,2)" json:"total"`

	// rate and label captured at generation time; later settings changes
	// never alter historical invoices
	TaxRate  float64 `json:"tax_rate"`
	TaxLabel string  `gorm:"size:50" json:"tax_label"`

	Status InvoiceStatus `gorm:"size:20;default:'PENDING';index" json:"status"`
	PaidAt *time.Time    `json:"paid_at"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InvoiceItem struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	InvoiceID uint  `gorm:"index;not null" json:"invoice_id"`
	OrderID   *uint `gorm:"index" json:"order_id,omitempty"`

	Description string  `gorm:"size:255" json:"description"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Total       float64 `gorm:"type:decimal(10,2);not null" json:"total"`
}
