package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	AppEnv  string
	BaseURL string

	// Database
	DBUrl          string
	DBMaxConns     int
	DBMinConns     int
	DBAutoMigrate  bool
	// Set behind PgBouncer in transaction mode
	DBSimpleProtocol bool

	// Auth
	JWTSecret    string
	JWTExpiresIn time.Duration
	BcryptCost   int

	CORSAllowedOrigins []string

	// Uploads
	StorageDriver     string // "local" or "s3"
	UploadDir         string
	MaxUploadBytes    int64
	ImageMaxDimension int
	ImageJPEGQuality  int
	// Empty disables malware scanning of uploads
	ClamAVAddress string
	ClamAVTimeout time.Duration

	// S3-compatible storage
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string

	// SMTP for the profile contact form
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Redis Configuration
	RedisURL      string
	RedisPassword string

	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitAuthThreshold   int
	RateLimitGlobalThreshold int
	RateLimitUploadThreshold int
	UploadDailyLimit         int
}

func LoadConfig() (*Config, error) {
	// .env is only present on local machines
	_ = godotenv.Load()

	cfg := &Config{
		Port:    getEnv("PORT", "8000"),
		AppEnv:  getEnv("APP_ENV", "development"),
		BaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8000"), "/"),

		DBUrl:          getEnv("DATABASE_URL", ""),
		DBMaxConns:     getEnvInt("DB_MAX_CONNS", 10),
		DBMinConns:     getEnvInt("DB_MIN_CONNS", 1),
		DBAutoMigrate:  getEnvBool("DB_AUTO_MIGRATE", true),
		DBSimpleProtocol: getEnvBool("DB_SIMPLE_PROTOCOL", false),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTExpiresIn: getEnvDuration("JWT_EXPIRES_IN", 24*time.Hour),
		BcryptCost:   getEnvInt("BCRYPT_COST", 12),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),

		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads/profile-images"),
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_BYTES", 5*1024*1024)),
		ImageMaxDimension: getEnvInt("IMAGE_MAX_DIMENSION", 1024),
		ImageJPEGQuality:  getEnvInt("IMAGE_JPEG_QUALITY", 85),
		ClamAVAddress:     getEnv("CLAMAV_ADDRESS", ""),
		ClamAVTimeout:     getEnvDuration("CLAMAV_TIMEOUT", 30*time.Second),

		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:        strings.TrimRight(getEnv("S3_ENDPOINT", ""), "/"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicBaseURL:   strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitAuthThreshold:   getEnvInt("RATE_LIMIT_AUTH_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 300),
		RateLimitUploadThreshold: getEnvInt("RATE_LIMIT_UPLOAD_THRESHOLD", 20),
		UploadDailyLimit:         getEnvInt("UPLOAD_DAILY_LIMIT", 200),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		log.Println("WARNING: JWT_SECRET not set. Using an insecure development secret.")
		cfg.JWTSecret = "dev-only-insecure-secret"
	}

	if cfg.StorageDriver != "local" && cfg.StorageDriver != "s3" {
		return nil, errors.New("STORAGE_DRIVER must be either local or s3")
	}
	if cfg.StorageDriver == "s3" && cfg.S3Bucket == "" {
		return nil, errors.New("S3_BUCKET is required when STORAGE_DRIVER=s3")
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("24h") or plain seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.TrimRight(p, "/"))
		}
	}
	return out
}
