package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// demoAPIKey keeps the server bootable without credentials; requests
// then fail upstream, not at this boundary.
const demoAPIKey = "demo_key"

type AppConfig struct {
	// OpenWeatherAPIKey is resolved from OPENWEATHER_API_KEY, then
	// OPENWEATHERMAP_API_KEY, then the demo placeholder.
	OpenWeatherAPIKey string

	Port string

	// HTTPTimeout bounds outbound provider calls.
	HTTPTimeout time.Duration

	// PreferencesFile is where display preferences persist across
	// sessions.
	PreferencesFile string

	// PreferDarkMode is the system-level dark-mode signal consulted
	// when no valid theme has been persisted.
	PreferDarkMode bool

	// Outbound rate limiting toward the provider. A non-positive
	// ProviderRateLimit disables the limiter.
	ProviderRateLimit float64
	ProviderBurst     int
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHERMAP_API_KEY")
	}
	if cfg.OpenWeatherAPIKey == "" {
		cfg.OpenWeatherAPIKey = demoAPIKey
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.PreferencesFile = getenvDefault("PREFERENCES_FILE", "preferences.json")
	cfg.PreferDarkMode = getenvBool("PREFER_DARK_MODE", false)

	// OpenWeatherMap free tier allows 60 calls/minute.
	cfg.ProviderRateLimit = getenvFloat("PROVIDER_RATE_LIMIT", 1.0)
	cfg.ProviderBurst = getenvInt("PROVIDER_BURST", 5)

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
