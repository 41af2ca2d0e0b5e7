package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env   string
	Port  int
	DBURL string

	JWTSecret     string
	JWTTTLMinutes int // 0 disables token expiry

	// when true, only the author of a post may update it
	StrictOwnership bool

	CORSAllowedOrigins []string

	OTELEndpoint string
}

func Load() Config {
	// .env is optional, real env always wins
	_ = godotenv.Load()

	return Config{
		Env:                getEnv("APP_ENV", "dev"),
		Port:               getEnvInt("PORT", 8080),
		DBURL:              buildDBURL(),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret"),
		JWTTTLMinutes:      getEnvInt("JWT_TTL_MINUTES", 0),
		StrictOwnership:    getEnvBool("BLOG_STRICT_OWNERSHIP", false),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		OTELEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "blog")
	pass := getEnv("DB_PASSWORD", "blog")
	name := getEnv("DB_NAME", "blog")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)

		if err != nil {
			return fallback
		}

		return b
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)

		if part != "" {
			out = append(out, part)
		}
	}

	return out
}
