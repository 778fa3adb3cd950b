package service

import (
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/config"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
)

// NewSettings builds the application settings from configuration.
func NewSettings(cfg config.POS) model.Settings {
	return model.Settings{
		Currency:       cfg.Currency,
		CurrencySymbol: cfg.CurrencySymbol,
		TaxRate:        decimal.NewFromFloat(cfg.TaxRate),
	}
}
