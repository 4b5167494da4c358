package controllers

import (
	"fmt"
	"net/http"
	"time"

	"hotel-guest-services/middleware"
	"hotel-guest-services/models"
	"hotel-guest-services/services"
	"hotel-guest-services/utils"

	"github.com/gin-gonic/gin"
)

type InvoiceController struct {
	Invoices *services.InvoiceService
	Settings *services.SettingsService
}

func NewInvoiceController(invoices *services.InvoiceService, settings *services.SettingsService) *InvoiceController {
	return &InvoiceController{Invoices: invoices, Settings: settings}
}

type bulkInvoicePayload struct {
	GuestID  uint   `json:"guestId" binding:"required"`
	OrderIDs []uint `json:"orderIds" binding:"required"`
}

// GenerateBulk (POST /api/invoices/bulk) — staff batch completed orders of
// one guest into a single invoice.
func (ic *InvoiceController) GenerateBulk(c *gin.Context) {
	var payload bulkInvoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "guestId and orderIds are required")
		return
	}

	invoice, err := ic.Invoices.GenerateBulk(payload.GuestID, payload.OrderIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, invoice)
}

// Reconcile (POST /api/invoices/reconcile) — invoice every COMPLETED order
// the fire-and-forget path missed.
func (ic *InvoiceController) Reconcile(c *gin.Context) {
	results, err := ic.Invoices.ReconcileUninvoiced()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, results)
}

// GetInvoices (GET /api/invoices) — staff see all, guests their own.
func (ic *InvoiceController) GetInvoices(c *gin.Context) {
	status := models.InvoiceStatus(c.Query("status"))

	var guestFilter *uint
	if !middleware.IsStaff(c) {
		id := middleware.GetUserID(c)
		guestFilter = &id
	}

	invoices, err := ic.Invoices.List(guestFilter, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoices)
}

// GetInvoice (GET /api/invoices/:id) — owner or staff.
func (ic *InvoiceController) GetInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	invoice, err := ic.Invoices.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !middleware.IsStaff(c) && invoice.GuestID != middleware.GetUserID(c) {
		utils.JSONError(c, http.StatusForbidden, "not your invoice")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, invoice)
}

type invoiceStatusPayload struct {
	Status models.InvoiceStatus `json:"status" binding:"required"`
	PaidAt *time.Time           `json:"paidAt"`
}

// UpdateInvoiceStatus (PATCH /api/invoices/:id/status) — staff mark paid or
// cancel.
func (ic *InvoiceController) UpdateInvoiceStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var payload invoiceStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}

	invoice, err := ic.Invoices.SetStatus(id, payload.Status, payload.PaidAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, invoice)
}

type bulkStatusPayload struct {
	InvoiceIDs []uint               `json:"invoiceIds" binding:"required"`
	Status     models.InvoiceStatus `json:"status" binding:"required"`
	PaidAt     *time.Time           `json:"paidAt"`
}

// BulkUpdateStatus (POST /api/invoices/bulk-status) — per-item application,
// partial success reported, never rolled back.
func (ic *InvoiceController) BulkUpdateStatus(c *gin.Context) {
	var payload bulkStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invoiceIds and status are required")
		return
	}

	result := ic.Invoices.BulkSetStatus(payload.InvoiceIDs, payload.Status, payload.PaidAt)
	utils.JSONSuccess(c, http.StatusOK, result)
}

// DownloadPDF (GET /api/invoices/:id/pdf?preview=) — streams the invoice as
// a PDF, inline when preview is set, attachment otherwise.
func (ic *InvoiceController) DownloadPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	invoice, err := ic.Invoices.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !middleware.IsStaff(c) && invoice.GuestID != middleware.GetUserID(c) {
		utils.JSONError(c, http.StatusForbidden, "not your invoice")
		return
	}

	settings, err := ic.Settings.GetOrInit()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pdfBytes, err := utils.RenderInvoicePDF(invoice, settings)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	disposition := "attachment"
	if c.Query("preview") != "" {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%s.pdf", disposition, invoice.InvoiceNumber))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
