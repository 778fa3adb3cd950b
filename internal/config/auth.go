package config

import "time"

type Auth struct {
	JWTSecret       string        `env:"AUTH_JWT_SECRET,required"`
	TokenTTL        time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"1h"`
	Issuer          string        `env:"AUTH_ISSUER" envDefault:"bizsuite"`
	RateLimit       int64         `env:"AUTH_RATE_LIMIT" envDefault:"5"`
	RateLimitWindow time.Duration `env:"AUTH_RATE_LIMIT_WINDOW" envDefault:"1m"`
}
