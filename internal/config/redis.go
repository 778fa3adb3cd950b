package config

import "time"

// Redis is optional: an empty URL disables caching, rate limiting and the
// shared cart store.
type Redis struct {
	URL          string        `env:"REDIS_URL"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
}

// Enabled reports whether a Redis URL was configured.
func (r Redis) Enabled() bool {
	return r.URL != ""
}
