package globals

import (
	"context"
	"os"
)

// Config carries process-level settings loaded once at startup and
// injected into the layers that need them.
type Config struct {
	Port        string
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	JwtSecret   []byte
	ReceiptHMAC []byte
	UploadDir   string
}

// LoadConfig reads configuration from the environment. godotenv is loaded
// by main before this runs, so .env values are already in the environment.
func LoadConfig() Config {
	cfg := Config{
		Port:        getenv("PORT", ":8080"),
		MongoURI:    getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getenv("MONGO_DB", "agrimart"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		JwtSecret:   []byte(getenv("JWT_SECRET", "dev_secret_change_me")),
		ReceiptHMAC: []byte(getenv("RECEIPT_HMAC_SECRET", "dev_receipt_secret")),
		UploadDir:   getenv("UPLOAD_DIR", "static/uploads"),
	}
	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const ClaimsKey ContextKey = "claims"

var Ctx = context.Background()
