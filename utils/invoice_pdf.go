package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"hotel-guest-services/models"
)

// RenderInvoicePDF renders an invoice plus hotel settings into a PDF byte
// buffer for the download endpoint.
func RenderInvoicePDF(inv *models.Invoice, settings *models.HotelSetting) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.InvoiceNumber, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Invoice No: "+inv.InvoiceNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Date: "+inv.CreatedAt.Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Status: "+string(inv.Status), "", 1, "L", false, 0, "")
	if inv.Guest.ID != 0 {
		billTo := inv.Guest.FullName
		if inv.Guest.Room.RoomNumber != "" {
			billTo += " (Room " + inv.Guest.Room.RoomNumber + ")"
		}
		pdf.CellFormat(0, 7, "Bill To: "+billTo, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// item table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(90, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(90, 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", item.Total), "1", 1, "R", false, 0, "")
	}

	taxLabel := inv.TaxLabel
	if taxLabel == "" {
		taxLabel = settings.TaxLabel
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(150, 8, "Subtotal", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", inv.Subtotal), "1", 1, "R", false, 0, "")
	pdf.CellFormat(150, 8, fmt.Sprintf("%s (%.0f%%)", taxLabel, inv.TaxRate*100), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", inv.Tax), "1", 1, "R", false, 0, "")
	pdf.CellFormat(150, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", inv.Total), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	if settings.BankName != "" || settings.BankAccount != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 7, "Payment Details", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		if settings.AccountHolder != "" {
			pdf.CellFormat(0, 6, "Account Holder: "+settings.AccountHolder, "", 1, "L", false, 0, "")
		}
		if settings.BankName != "" {
			pdf.CellFormat(0, 6, "Bank: "+settings.BankName, "", 1, "L", false, 0, "")
		}
		if settings.BankAccount != "" {
			pdf.CellFormat(0, 6, "Account: "+settings.BankAccount, "", 1, "L", false, 0, "")
		}
		if settings.BankIFSC != "" {
			pdf.CellFormat(0, 6, "IFSC: "+settings.BankIFSC, "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	if strings.TrimSpace(settings.InvoiceFooter) != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, settings.InvoiceFooter, "", "C", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
