package config

import (
	"os"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	AuthURL     string
	AuthJWKSURL string // Constructed from AuthURL + /auth/v1/.well-known/jwks.json
	CORSOrigins string
	TablePrefix string
	// Object storage (S3-compatible: AWS, MinIO, DO Spaces, R2)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string // Optional: custom endpoint for S3-compatible services
	S3PresignExpiry time.Duration
	// Optional YAML file overriding folder/file size limits
	StorageLimitsFile string
	// Optional directory for timestamped log files (stdout only when empty)
	LogDir string
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	tablePrefix := getTablePrefix(env)
	authURL := getEnv("AUTH_URL", "")

	// Construct JWKS URL from the managed auth service URL
	jwksURL := authURL + "/auth/v1/.well-known/jwks.json"

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		AuthURL:     authURL,
		AuthJWKSURL: jwksURL,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: tablePrefix,
		// Object storage
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Bucket:          getEnv("S3_BUCKET", "atrium-documents"),
		S3AccessKey:       getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:       getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3PresignExpiry:   getDuration("S3_PRESIGN_EXPIRY", time.Hour),
		StorageLimitsFile: getEnv("STORAGE_LIMITS_FILE", ""),
		LogDir:            getEnv("LOG_DIR", ""),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	// Auto-generate based on environment
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
