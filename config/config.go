package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"mapify-server/network"
)

const (
	SourceHTTP  = "http"
	SourceStub  = "stub"
	SourceMongo = "mongo"
)

type Config struct {
	Port            string
	FeedSource      string
	LocationsURL    string
	FixturePath     string
	HTTPTimeout     time.Duration
	MongoURI        string
	MongoDatabase   string
	RedisAddr       string
	RedisDB         int
	RedisChannel    string
	JWTSecret       string
	TokenTTL        time.Duration
	RefreshSchedule string
	AllowedOrigins  []string
}

// Load reads configuration from the environment, after loading .env if
// one exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	return fromEnv()
}

func fromEnv() (Config, error) {
	cfg := Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		FeedSource:      getEnvOrDefault("FEED_SOURCE", SourceHTTP),
		LocationsURL:    getEnvOrDefault("LOCATIONS_URL", network.DefaultLocationsURL),
		FixturePath:     getEnvOrDefault("FIXTURE_PATH", "./data/locations.json"),
		MongoURI:        os.Getenv("MONGODB_URI"),
		MongoDatabase:   getEnvOrDefault("MONGODB_DATABASE", "mapify"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisChannel:    getEnvOrDefault("REDIS_CHANNEL", "mapify:state"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RefreshSchedule: os.Getenv("REFRESH_SCHEDULE"),
		AllowedOrigins:  splitList(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
	}

	var err error
	if cfg.HTTPTimeout, err = time.ParseDuration(getEnvOrDefault("HTTP_TIMEOUT", "30s")); err != nil {
		return Config{}, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if cfg.TokenTTL, err = time.ParseDuration(getEnvOrDefault("TOKEN_TTL", "24h")); err != nil {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnvOrDefault("REDIS_DB", "0")); err != nil {
		return Config{}, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	switch cfg.FeedSource {
	case SourceHTTP, SourceStub:
	case SourceMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGODB_URI environment variable is not set")
		}
	default:
		return Config{}, fmt.Errorf("unknown FEED_SOURCE %q", cfg.FeedSource)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
