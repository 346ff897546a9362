package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"mapify-server/network"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := fromEnv()
	if err != nil {
		t.Fatalf("fromEnv: %v", err)
	}
	if cfg.Port != "8080" || cfg.FeedSource != SourceHTTP || cfg.LocationsURL != network.DefaultLocationsURL {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	want := []string{"http://localhost:3000", "http://localhost:5173"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("FEED_SOURCE", SourceMongo)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGINS", " * , ")

	cfg, err := fromEnv()
	if err != nil {
		t.Fatalf("fromEnv: %v", err)
	}
	if cfg.RedisDB != 3 || cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"*"}) {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET"},
		{"bad source", map[string]string{"JWT_SECRET": "s", "FEED_SOURCE": "ftp"}, "FEED_SOURCE"},
		{"mongo without uri", map[string]string{"JWT_SECRET": "s", "FEED_SOURCE": SourceMongo}, "MONGODB_URI"},
		{"bad redis db", map[string]string{"JWT_SECRET": "s", "REDIS_DB": "zero"}, "REDIS_DB"},
		{"bad timeout", map[string]string{"JWT_SECRET": "s", "HTTP_TIMEOUT": "soon"}, "HTTP_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := fromEnv()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("got error %v, want one mentioning %s", err, tt.want)
			}
		})
	}
}
