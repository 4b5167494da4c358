package services

import (
	"errors"
	"fmt"

	"hotel-guest-services/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsService manages the singleton hotel settings row.
type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

func defaultSettings() models.HotelSetting {
	return models.HotelSetting{
		ID:            1,
		TaxRate:       models.DefaultTaxRate,
		TaxLabel:      models.DefaultTaxLabel,
		InvoicePrefix: models.DefaultInvoicePrefix,
	}
}

// GetOrInit returns the settings row, lazily creating it with defaults on
// first read. The create goes through an ON CONFLICT DO NOTHING upsert on
// the fixed primary key so concurrent first reads cannot race a duplicate.
func (s *SettingsService) GetOrInit() (*models.HotelSetting, error) {
	var settings models.HotelSetting
	err := s.DB.First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	seed := defaultSettings()
	if err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil && !isDuplicateKey(err) {
		return nil, fmt.Errorf("failed to initialize settings: %w", err)
	}
	if err := s.DB.First(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to reload settings: %w", err)
	}
	return &settings, nil
}

type SettingsUpdate struct {
	TaxRate       *float64 `json:"tax_rate"`
	TaxLabel      *string  `json:"tax_label"`
	InvoicePrefix *string  `json:"invoice_prefix"`
	InvoiceFooter *string  `json:"invoice_footer"`
	BankName      *string  `json:"bank_name"`
	BankAccount   *string  `json:"bank_account"`
	BankIFSC      *string  `json:"bank_ifsc"`
	AccountHolder *string  `json:"account_holder"`
}

// Update applies the provided fields to the singleton row.
func (s *SettingsService) Update(payload SettingsUpdate) (*models.HotelSetting, error) {
	settings, err := s.GetOrInit()
	if err != nil {
		return nil, err
	}

	if payload.TaxRate != nil {
		if *payload.TaxRate < 0 || *payload.TaxRate >= 1 {
			return nil, fmt.Errorf("%w: tax_rate must be a decimal fraction in [0,1)", ErrValidation)
		}
		settings.TaxRate = *payload.TaxRate
	}
	if payload.TaxLabel != nil {
		settings.TaxLabel = *payload.TaxLabel
	}
	if payload.InvoicePrefix != nil {
		settings.InvoicePrefix = *payload.InvoicePrefix
	}
	if payload.InvoiceFooter != nil {
		settings.InvoiceFooter = *payload.InvoiceFooter
	}
	if payload.BankName != nil {
		settings.BankName = *payload.BankName
	}
	if payload.BankAccount != nil {
		settings.BankAccount = *payload.BankAccount
	}
	if payload.BankIFSC != nil {
		settings.BankIFSC = *payload.BankIFSC
	}
	if payload.AccountHolder != nil {
		settings.AccountHolder = *payload.AccountHolder
	}

	if err := s.DB.Save(settings).Error; err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}
