package services

import (
	"errors"
	"testing"

	"hotel-guest-services/models"
)

func TestGetOrInitCreatesDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)

	settings, err := svc.GetOrInit()
	if err != nil {
		t.Fatalf("GetOrInit() error = %v", err)
	}

	if settings.TaxRate != models.DefaultTaxRate {
		t.Errorf("tax rate = %v, want %v", settings.TaxRate, models.DefaultTaxRate)
	}
	if settings.TaxLabel != models.DefaultTaxLabel {
		t.Errorf("tax label = %q, want %q", settings.TaxLabel, models.DefaultTaxLabel)
	}
	if settings.InvoicePrefix != models.DefaultInvoicePrefix {
		t.Errorf("invoice prefix = %q, want %q", settings.InvoicePrefix, models.DefaultInvoicePrefix)
	}

	var count int64
	db.Model(&models.HotelSetting{}).Count(&count)
	if count != 1 {
		t.Errorf("settings rows = %d, want 1", count)
	}
}

func TestGetOrInitReturnsSameRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)

	first, err := svc.GetOrInit()
	if err != nil {
		t.Fatalf("first GetOrInit() error = %v", err)
	}
	second, err := svc.GetOrInit()
	if err != nil {
		t.Fatalf("second GetOrInit() error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("ids differ: %d vs %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&models.HotelSetting{}).Count(&count)
	if count != 1 {
		t.Errorf("settings rows = %d, want 1", count)
	}
}

func TestUpdateSettings(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)

	rate := 0.05
	label := "VAT"
	bank := "State Bank"
	updated, err := svc.Update(SettingsUpdate{TaxRate: &rate, TaxLabel: &label, BankName: &bank})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.TaxRate != 0.05 || updated.TaxLabel != "VAT" || updated.BankName != "State Bank" {
		t.Errorf("updated = %v/%q/%q", updated.TaxRate, updated.TaxLabel, updated.BankName)
	}
	// untouched fields keep their defaults
	if updated.InvoicePrefix != models.DefaultInvoicePrefix {
		t.Errorf("invoice prefix = %q, want default %q", updated.InvoicePrefix, models.DefaultInvoicePrefix)
	}

	reread, err := svc.GetOrInit()
	if err != nil {
		t.Fatalf("GetOrInit() after update error = %v", err)
	}
	if reread.TaxRate != 0.05 || reread.TaxLabel != "VAT" {
		t.Errorf("persisted = %v/%q, want 0.05/VAT", reread.TaxRate, reread.TaxLabel)
	}
}

func TestUpdateSettingsRejectsBadTaxRate(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)

	for _, rate := range []float64{-0.1, 1, 1.5} {
		r := rate
		if _, err := svc.Update(SettingsUpdate{TaxRate: &r}); !errors.Is(err, ErrValidation) {
			t.Errorf("Update(tax_rate=%v) error = %v, want ErrValidation", rate, err)
		}
	}

	settings, err := svc.GetOrInit()
	if err != nil {
		t.Fatalf("GetOrInit() error = %v", err)
	}
	if settings.TaxRate != models.DefaultTaxRate {
		t.Errorf("tax rate after rejected updates = %v, want default", settings.TaxRate)
	}
}
