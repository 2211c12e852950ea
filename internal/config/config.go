package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all externally supplied runtime settings. It is built once
// in main and passed down explicitly; nothing reads the environment after
// Load returns.
type Config struct {
	Host string
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisURL string

	JWTSecret string
	JWTExpiry time.Duration

	CORSOrigins []string

	UploadDir   string
	BaseURL     string
	MaxUploadMB int64

	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
	AWSBucket    string

	Environment string
}

func Load() *Config {
	expiryHours := envInt("JWT_EXPIRY_HOURS", 168) // 7 days

	origins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins = origins[:0]
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return &Config{
		Host: envString("HOST", ""),
		Port: envString("PORT", "8080"),

		DBHost:     envString("DB_HOST", "localhost"),
		DBUser:     envString("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     envString("DB_NAME", "travelnest"),
		DBPort:     envString("DB_PORT", "5432"),

		RedisURL: envString("REDIS_URL", "redis://localhost:6379"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: time.Duration(expiryHours) * time.Hour,

		CORSOrigins: origins,

		UploadDir:   envString("UPLOAD_DIR", "./uploads"),
		BaseURL:     envString("BASE_URL", "http://localhost:8080"),
		MaxUploadMB: int64(envInt("MAX_UPLOAD_MB", 5)),

		AWSRegion:    os.Getenv("AWS_REGION"),
		AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSBucket:    os.Getenv("AWS_S3_BUCKET"),

		Environment: envString("APP_ENV", "development"),
	}
}

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
