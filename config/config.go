package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string
	GinMode     string
	AutoMigrate bool

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	JWTSecret     string
	AdminTokenTTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers []string
}

var ErrMissingDatabaseURL = errors.New("DATABASE_URL environment variable not set")

// Load reads .env (if present) and the process environment.
// DATABASE_URL is the only required setting.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Port:              getenv("PORT", "8080"),
		GinMode:           os.Getenv("GIN_MODE"),
		AutoMigrate:       boolEnv("AUTO_MIGRATE", true),
		DBMaxOpenConns:    intEnv("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    intEnv("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetime: durationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminTokenTTL:     durationEnv("ADMIN_TOKEN_TTL", 12*time.Hour),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           intEnv("REDIS_DB", 0),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
	}
	if cfg.DatabaseURL == "" {
		return cfg, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET not set, admin tokens will not survive a restart")
		cfg.JWTSecret = randomSecret()
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func intEnv(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("⚠️ invalid %s=%q, using %d", k, v, def)
	}
	return def
}

func boolEnv(k string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("⚠️ invalid %s=%q, using %t", k, v, def)
	}
	return def
}

func durationEnv(k string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("⚠️ invalid %s=%q, using %s", k, v, def)
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "shopfront-dev-secret"
	}
	return hex.EncodeToString(b)
}
