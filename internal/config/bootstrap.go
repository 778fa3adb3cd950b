package config

// Bootstrap creates the first administrator when both email and password are
// set. An existing account with the same email is left untouched.
type Bootstrap struct {
	AdminEmail    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	AdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
	AdminName     string `env:"BOOTSTRAP_ADMIN_NAME" envDefault:"Administrator"`
}

func (b Bootstrap) Enabled() bool {
	return b.AdminEmail != "" && b.AdminPassword != ""
}
