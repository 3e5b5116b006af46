package config

import "log"

// MustRequire aborts startup when any of the named env-backed values is empty.
// Checked once in main, before anything opens a connection.
func (c Config) MustRequire() {
	requireNonEmpty(c.DatabaseURL, "DATABASE_URL")
	requireNonEmpty(string(c.JWTSecret), "JWT_SECRET")
	requireNonEmpty(string(c.StorageSigningSecret), "STORAGE_SIGNING_SECRET")
	requireNonEmpty(c.StorageURL, "STORAGE_URL")
	requireNonEmpty(c.SiteURL, "SITE_URL")
}

func requireNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}
