package services

import (
	"errors"
	"fmt"
	"time"

	"hotel-guest-services/models"
	"hotel-guest-services/utils"

	"gorm.io/gorm"
)

// InvoiceService generates invoices from completed orders and manages their
// payment lifecycle. Totals are always recomputed from the source orders and
// the tax rate is captured into the invoice at generation time.
type InvoiceService struct {
	DB       *gorm.DB
	Settings *SettingsService
}

func NewInvoiceService(db *gorm.DB, settings *SettingsService) *InvoiceService {
	return &InvoiceService{DB: db, Settings: settings}
}

// invoiced order ids: orders already referenced by an item of a
// non-cancelled invoice
func (s *InvoiceService) liveInvoiceOrderIDs(tx *gorm.DB) *gorm.DB {
	return tx.Model(&models.InvoiceItem{}).
		Select("invoice_items.order_id").
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Where("invoices.status <> ?", models.InvoiceCancelled).
		Where("invoice_items.order_id IS NOT NULL")
}

func (s *InvoiceService) findLiveInvoiceForOrder(orderID uint) (*models.Invoice, error) {
	var item models.InvoiceItem
	err := s.DB.
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Where("invoice_items.order_id = ?", orderID).
		Where("invoices.status <> ?", models.InvoiceCancelled).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check existing invoice: %w", err)
	}
	return s.GetByID(item.InvoiceID)
}

// nextInvoiceNumber builds {prefix}-{YYYYMMDD}-{seq} where seq is a 4-digit
// per-day counter. The unique index on invoice_number plus the retry loop in
// createWithNumber covers concurrent generation.
func (s *InvoiceService) nextInvoiceNumber(tx *gorm.DB, prefix string, attempt int) (string, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var count int64
	if err := tx.Model(&models.Invoice{}).
		Where("created_at >= ?", dayStart).
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to count today's invoices: %w", err)
	}

	seq := count + 1 + int64(attempt)
	return fmt.Sprintf("%s-%s-%04d", prefix, now.Format("20060102"), seq), nil
}

// createWithNumber persists the invoice inside a transaction, retrying with
// the next sequence number on a duplicate invoice_number.
func (s *InvoiceService) createWithNumber(invoice *models.Invoice, prefix string) error {
	const maxRetries = 5
	var createErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		number, err := s.nextInvoiceNumber(s.DB, prefix, attempt)
		if err != nil {
			return err
		}
		invoice.ID = 0
		invoice.InvoiceNumber = number
		for i := range invoice.Items {
			invoice.Items[i].ID = 0
			invoice.Items[i].InvoiceID = 0
		}

		createErr = s.DB.Create(invoice).Error
		if createErr == nil {
			return nil
		}
		if !isDuplicateKey(createErr) {
			return fmt.Errorf("failed to create invoice: %w", createErr)
		}
	}
	return fmt.Errorf("failed to create invoice after retries: %w", createErr)
}

// GenerateForOrder produces the single invoice for a completed order. If a
// live invoice already references the order it is returned unchanged, which
// makes auto-generation and reconciliation idempotent.
func (s *InvoiceService) GenerateForOrder(orderID uint) (*models.Invoice, error) {
	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order.Status != models.OrderCompleted {
		return nil, ErrOrderNotComplete
	}

	if existing, err := s.findLiveInvoiceForOrder(orderID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	settings, err := s.Settings.GetOrInit()
	if err != nil {
		return nil, err
	}

	subtotal := order.TotalAmount
	tax := utils.Round2(subtotal * settings.TaxRate)
	invoice := models.Invoice{
		GuestID:  order.GuestID,
		Subtotal: utils.Round2(subtotal),
		Tax:      tax,
		Total:    utils.Round2(subtotal + tax),
		TaxRate:  settings.TaxRate,
		TaxLabel: settings.TaxLabel,
		Status:   models.InvoicePending,
		Items: []models.InvoiceItem{{
			OrderID:     &order.ID,
			Description: fmt.Sprintf("Order #%d (%s)", order.ID, order.OrderType),
			Quantity:    1,
			UnitPrice:   utils.Round2(order.TotalAmount),
			Total:       utils.Round2(order.TotalAmount),
		}},
	}

	if err := s.createWithNumber(&invoice, settings.InvoicePrefix); err != nil {
		return nil, err
	}
	return s.GetByID(invoice.ID)
}

// GenerateBulk aggregates several completed orders of one guest into a
// single invoice, one item per source order. Orders that are not COMPLETED,
// belong to another guest, or already carry a live invoice are skipped; an
// empty eligible set is a validation error.
func (s *InvoiceService) GenerateBulk(guestID uint, orderIDs []uint) (*models.Invoice, error) {
	if len(orderIDs) == 0 {
		return nil, fmt.Errorf("%w: no orders selected", ErrNoEligibleOrders)
	}

	var orders []models.Order
	err := s.DB.
		Where("id IN ?", orderIDs).
		Where("guest_id = ?", guestID).
		Where("status = ?", models.OrderCompleted).
		Where("id NOT IN (?)", s.liveInvoiceOrderIDs(s.DB)).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: none of the selected orders are completed, unbilled and owned by guest %d", ErrNoEligibleOrders, guestID)
	}

	settings, err := s.Settings.GetOrInit()
	if err != nil {
		return nil, err
	}

	subtotal := 0.0
	items := make([]models.InvoiceItem, 0, len(orders))
	for i := range orders {
		o := orders[i]
		subtotal += o.TotalAmount
		items = append(items, models.InvoiceItem{
			OrderID:     &orders[i].ID,
			Description: fmt.Sprintf("Order #%d (%s)", o.ID, o.OrderType),
			Quantity:    1,
			UnitPrice:   utils.Round2(o.TotalAmount),
			Total:       utils.Round2(o.TotalAmount),
		})
	}

	tax := utils.Round2(subtotal * settings.TaxRate)
	invoice := models.Invoice{
		GuestID:  guestID,
		Subtotal: utils.Round2(subtotal),
		Tax:      tax,
		Total:    utils.Round2(subtotal + tax),
		TaxRate:  settings.TaxRate,
		TaxLabel: settings.TaxLabel,
		Status:   models.InvoicePending,
		Items:    items,
	}

	if err := s.createWithNumber(&invoice, settings.InvoicePrefix); err != nil {
		return nil, err
	}
	return s.GetByID(invoice.ID)
}

// SetStatus moves a DRAFT/PENDING invoice to PAID or CANCELLED. PAID stamps
// paidAt (client-supplied timestamp wins when given). Invoices already in a
// terminal state are rejected.
func (s *InvoiceService) SetStatus(invoiceID uint, status models.InvoiceStatus, paidAt *time.Time) (*models.Invoice, error) {
	if status != models.InvoicePaid && status != models.InvoiceCancelled {
		return nil, fmt.Errorf("%w: target status must be PAID or CANCELLED", ErrInvalidStatus)
	}

	var invoice models.Invoice
	if err := s.DB.First(&invoice, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}

	if !invoice.Status.Payable() {
		return nil, ErrInvoiceFinalized
	}

	updates := map[string]interface{}{"status": status}
	if status == models.InvoicePaid {
		when := time.Now().UTC()
		if paidAt != nil {
			when = paidAt.UTC()
		}
		updates["paid_at"] = when
	}

	if err := s.DB.Model(&invoice).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}
	return s.GetByID(invoiceID)
}

// BulkItemResult reports the outcome for one invoice in a bulk operation.
type BulkItemResult struct {
	InvoiceID uint   `json:"invoice_id"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

// BulkStatusResult aggregates per-item outcomes; partial success is expected
// and reported, never rolled back.
type BulkStatusResult struct {
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Results   []BulkItemResult `json:"results"`
}

// BulkSetStatus applies the transition to each invoice independently.
func (s *InvoiceService) BulkSetStatus(invoiceIDs []uint, status models.InvoiceStatus, paidAt *time.Time) BulkStatusResult {
	result := BulkStatusResult{Results: make([]BulkItemResult, 0, len(invoiceIDs))}
	for _, id := range invoiceIDs {
		if _, err := s.SetStatus(id, status, paidAt); err != nil {
			result.Failed++
			result.Results = append(result.Results, BulkItemResult{InvoiceID: id, Error: err.Error()})
			continue
		}
		result.Succeeded++
		result.Results = append(result.Results, BulkItemResult{InvoiceID: id, OK: true})
	}
	return result
}

// ReconcileItem reports the outcome for one completed-but-uninvoiced order.
type ReconcileItem struct {
	OrderID   uint   `json:"order_id"`
	InvoiceID uint   `json:"invoice_id,omitempty"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

// ReconcileUninvoiced finds COMPLETED orders with no live invoice (the
// window left open by fire-and-forget auto-generation) and invoices each.
func (s *InvoiceService) ReconcileUninvoiced() ([]ReconcileItem, error) {
	var orders []models.Order
	err := s.DB.
		Where("status = ?", models.OrderCompleted).
		Where("id NOT IN (?)", s.liveInvoiceOrderIDs(s.DB)).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find uninvoiced orders: %w", err)
	}

	results := make([]ReconcileItem, 0, len(orders))
	for _, o := range orders {
		inv, genErr := s.GenerateForOrder(o.ID)
		if genErr != nil {
			results = append(results, ReconcileItem{OrderID: o.ID, Error: genErr.Error()})
			continue
		}
		results = append(results, ReconcileItem{OrderID: o.ID, InvoiceID: inv.ID, OK: true})
	}
	return results, nil
}

func (s *InvoiceService) GetByID(invoiceID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.DB.
		Preload("Items").
		Preload("Guest").
		Preload("Guest.Room").
		First(&invoice, invoiceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	return &invoice, nil
}

// List returns invoices newest first, optionally filtered by guest and
// status.
func (s *InvoiceService) List(guestID *uint, status models.InvoiceStatus) ([]models.Invoice, error) {
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

	var invoices []models.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve invoices: %w", err)
	}
	return invoices, nil
}
