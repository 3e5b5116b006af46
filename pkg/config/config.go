package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabaseURL string

	JWTSecret []byte

	EmailAPIURL string
	EmailAPIKey string
	EmailFrom   string
	AdminEmail  string

	SiteURL string

	StorageURL           string
	StorageBucket        string
	StorageSigningSecret []byte

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string

	RedisAddr string
}

func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "storefront"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		EmailAPIURL: EnvDefault("EMAIL_API_URL", "https://api.resend.com/emails"),
		EmailAPIKey: os.Getenv("EMAIL_API_KEY"),
		EmailFrom:   EnvDefault("EMAIL_FROM", "orders@atelierlane.studio"),
		AdminEmail:  os.Getenv("ADMIN_EMAIL"),

		SiteURL: os.Getenv("SITE_URL"),

		StorageURL:           os.Getenv("STORAGE_URL"),
		StorageBucket:        EnvDefault("STORAGE_BUCKET", "digital-products"),
		StorageSigningSecret: []byte(os.Getenv("STORAGE_SIGNING_SECRET")),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
