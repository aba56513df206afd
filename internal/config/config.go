package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	StoreAPIURL     string
	UpstreamTimeout time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	TokenFile       string
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		StoreAPIURL:     envOrDefault("WORDPRESS_API_URL", "http://localhost:8888/wp-json"),
		UpstreamTimeout: envDuration("UPSTREAM_TIMEOUT_SECONDS", 30*time.Second),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		AllowedOrigins:  envList("ALLOWED_ORIGINS"),
		TokenFile:       envOrDefault("CART_TOKEN_FILE", defaultTokenFile()),
	}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cart-token.json"
	}
	return home + "/.config/clinic-storefront/cart-token.json"
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
