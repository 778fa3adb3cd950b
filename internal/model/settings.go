package model

import "github.com/shopspring/decimal"

// Settings is the application-wide state shared by every session. It is built
// once at startup and handed to the services that need it.
type Settings struct {
	Currency       string          `json:"currency"`
	CurrencySymbol string          `json:"currency_symbol"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
}
