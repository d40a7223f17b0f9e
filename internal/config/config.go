package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	Environment       string
	DatabaseURL       string
	DBAutoMigrate     bool
	JWTSecret         string
	SessionTTL        time.Duration
	GoogleAudience    string
	AllowOrigins      []string
	LogLevel          string
	LogstashTCPAddr   string
	OTelServiceName   string
	OTelEndpoint      string
	MinIOEndpoint     string
	MinIOAccessKey    string
	MinIOSecretKey    string
	MinIOUseSSL       bool
	MinIOBucketRecipe string
	MinIOPublicURL    string
	ImageMaxBytes     int64
	ImageMaxDimension int
	RecipeCategories  []string
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	sessionTTL := 24 * time.Hour
	if v, err := time.ParseDuration(getenv("SESSION_TTL", "24h")); err == nil && v > 0 {
		sessionTTL = v
	}

	imageMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("RECIPE_IMAGE_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}

	maxDimension := 4096
	if v, err := strconv.Atoi(getenv("RECIPE_IMAGE_MAX_DIMENSION", "4096")); err == nil && v > 0 {
		maxDimension = v
	}

	var categories []string
	if raw := getenv("RECIPE_CATEGORIES", ""); strings.TrimSpace(raw) != "" {
		categories = splitAndTrim(raw)
	}

	return Config{
		Port:              getenv("PORT", "8080"),
		Environment:       strings.ToLower(getenv("ENVIRONMENT", "development")),
		DatabaseURL:       must("DATABASE_URL"),
		DBAutoMigrate:     getenv("DB_AUTO_MIGRATE", "true") == "true",
		JWTSecret:         must("JWT_SECRET"),
		SessionTTL:        sessionTTL,
		GoogleAudience:    getenv("GOOGLE_AUDIENCE", ""),
		AllowOrigins:      splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogstashTCPAddr:   getenv("LOGSTASH_TCP_ADDR", ""),
		OTelServiceName:   getenv("OTEL_SERVICE_NAME", "recipe-share-api"),
		OTelEndpoint:      getenv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		MinIOEndpoint:     must("MINIO_ENDPOINT"),
		MinIOAccessKey:    must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:    must("MINIO_SECRET_KEY"),
		MinIOUseSSL:       getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketRecipe: getenv("MINIO_BUCKET_RECIPES", "recipe-images"),
		MinIOPublicURL:    getenv("MINIO_PUBLIC_URL", ""),
		ImageMaxBytes:     imageMax,
		ImageMaxDimension: maxDimension,
		RecipeCategories:  categories,
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
