package config

import "time"

type POS struct {
	TaxRate        float64       `env:"POS_TAX_RATE" envDefault:"0.18"`
	Currency       string        `env:"POS_CURRENCY" envDefault:"INR"`
	CurrencySymbol string        `env:"POS_CURRENCY_SYMBOL" envDefault:"₹"`
	CartTTL        time.Duration `env:"CART_TTL" envDefault:"12h"`
}
