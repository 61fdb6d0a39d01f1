package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the ECDSA server.
type Config struct {
	ServerID   string
	ServerPort string
	JWTSecret  string

	// StorageBackend selects the persistence adapter: "local" or "cloud".
	StorageBackend string
	// Env namespaces table/bucket names for the cloud backend, e.g.
	// "dev" produces "dev-gotham-alpha" and "dev_MasterKey".
	Env string

	MinioURL    string
	MinioKey    string
	MinioSecret string
	MinioUseSSL bool

	// FailKeygenIfActiveShareExists enforces the at-most-one-active-share
	// invariant at KG1 when set.
	FailKeygenIfActiveShareExists bool
}

// loadEnvFiles loads environment files in the correct order: .env ->
// .env.{NODE_ENV} -> .env.local.
func loadEnvFiles() {
	_ = godotenv.Load()
	if env := os.Getenv("NODE_ENV"); env != "" {
		_ = godotenv.Load(".env." + env)
	}
	_ = godotenv.Load(".env.local")
}

// Load reads configuration from environment variables.
func Load() *Config {
	loadEnvFiles()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Println("Warning: JWT_SECRET not set - all bearer tokens will be rejected")
	} else if err := ValidateJWTSecret(jwtSecret); err != nil {
		log.Printf("Warning: JWT_SECRET failed validation: %v", err)
	}

	cfg := &Config{
		ServerID:                      getEnv("SERVER_ID", "ecdsa-server-1"),
		ServerPort:                    getEnv("SERVER_PORT", "8080"),
		JWTSecret:                     jwtSecret,
		StorageBackend:                getEnv("STORAGE_BACKEND", "local"),
		Env:                           getEnv("GOTHAM_ENV", "dev"),
		MinioURL:                      getEnv("MINIO_URL", "localhost:9000"),
		MinioKey:                      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecret:                   getEnv("MINIO_SECRET_KEY", "minioadmin123"),
		MinioUseSSL:                   getEnvBool("MINIO_USE_SSL", false),
		FailKeygenIfActiveShareExists: getEnvBool("FAIL_KEYGEN_IF_ACTIVE_SHARE_EXISTS", false),
	}

	if nodeEnv := getEnv("NODE_ENV", "development"); nodeEnv == "production" && cfg.MinioSecret == "minioadmin123" {
		log.Fatal("FATAL: production environment detected but MINIO_SECRET_KEY is using the default value")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// ValidateJWTSecret checks if a JWT secret meets minimum security requirements.
func ValidateJWTSecret(secret string) error {
	if len(secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters long")
	}

	uniqueChars := make(map[rune]bool)
	for _, char := range secret {
		uniqueChars[char] = true
	}
	if len(uniqueChars) < 10 {
		return fmt.Errorf("JWT secret must contain at least 10 unique characters")
	}

	return nil
}
