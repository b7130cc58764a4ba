package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type App struct {
	Port string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	CORSOrigins    []string
	MaxUploadBytes int64
	StatsCacheTTL  time.Duration

	MongoDB string
	Storage Storage
}

type Storage struct {
	Driver          string // local|gcs
	Dir             string
	GCSBucket       string
	GCSCredentials  string // path to a service account file, optional
	GCSEndpoint     string // emulator endpoint, optional
	SignedURLExpiry time.Duration
}

// LoadApp reads settings from the environment, loading .env first when present.
func LoadApp() App {
	_ = godotenv.Load()

	return App{
		Port:           getEnv("PORT", "8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTIssuer:      getEnv("JWT_ISSUER", "recruitment-api"),
		JWTTTL:         time.Duration(getEnvInt("JWT_TTL_MINUTES", 1440)) * time.Minute,
		CORSOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_MB", 10)) << 20,
		StatsCacheTTL:  time.Duration(getEnvInt("STATS_CACHE_TTL_SECONDS", 30)) * time.Second,
		MongoDB:        getEnv("MONGO_DB", "recruitment"),
		Storage: Storage{
			Driver:          strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
			Dir:             getEnv("STORAGE_DIR", "./storage"),
			GCSBucket:       os.Getenv("GCS_BUCKET"),
			GCSCredentials:  os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
			GCSEndpoint:     os.Getenv("STORAGE_EMULATOR_HOST"),
			SignedURLExpiry: time.Duration(getEnvInt("SIGNED_URL_TTL_MINUTES", 15)) * time.Minute,
		},
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
