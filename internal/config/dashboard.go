package config

import "time"

type Dashboard struct {
	CacheTTL time.Duration `env:"DASHBOARD_CACHE_TTL" envDefault:"30s"`
}
