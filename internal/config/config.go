package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at boot.
type Config struct {
	DatabaseURL string
	Port        int

	JWTSecret       string
	AccessTokenTTL  int // seconds
	RefreshTokenTTL int // seconds

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	return &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Port:            getInt("PORT", 8000),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  getInt("ACCESS_TOKEN_TTL", 900),
		RefreshTokenTTL: getInt("REFRESH_TOKEN_TTL", 7*24*3600),
		RedisAddr:       getString("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getInt("REDIS_DB", 0),
		MinioEndpoint:   getString("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:  getString("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:  getString("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:     os.Getenv("MINIO_USE_SSL") == "true",
		MinioBucket:     getString("MINIO_BUCKET", "restomart-products"),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
