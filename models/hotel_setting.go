package models

import "time"

// Defaults used when the settings row is lazily created on first read.
const (
	DefaultTaxRate       = 0.18
	DefaultTaxLabel      = "GST"
	DefaultInvoicePrefix = "INV"
)

// HotelSetting is a singleton row (ID is always 1).
type HotelSetting struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TaxRate       float64 `json:"tax_rate"`
	TaxLabel      string  `gorm:"size:50" json:"tax_label"`
	InvoicePrefix string  `gorm:"size:20" json:"invoice_prefix"`
	InvoiceFooter string  `gorm:"type:text" json:"invoice_footer"`

	BankName      string `gorm:"size:255" json:"bank_name"`
	BankAccount   string `gorm:"size:50" json:"bank_account"`
	BankIFSC      string `gorm:"size:20" json:"bank_ifsc"`
	AccountHolder string `gorm:"size:255" json:"account_holder"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
