package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "BWA_CONFIG"

// ErrNoDatabase is returned with an otherwise usable config.
var ErrNoDatabase = errors.New("DATABASE_URL not set")

type Config struct {
	Env               string        `yaml:"env"`
	ListenAddr        string        `yaml:"listenAddr"`
	DatabaseURL       string        `yaml:"databaseUrl"`
	MigrateOnStart    bool          `yaml:"migrateOnStart"`
	LogLevel          string        `yaml:"logLevel"`
	ScanWorkers       int           `yaml:"scanWorkers"`
	ScanPollInterval  time.Duration `yaml:"scanPollInterval"`
	ScanCacheWindow   time.Duration `yaml:"scanCacheWindow"`
	ScanForceCooldown time.Duration `yaml:"scanForceCooldown"`
	FetchTimeout      time.Duration `yaml:"fetchTimeout"`
	FetchRatePerSec   float64       `yaml:"fetchRatePerSec"`
	FetchBurst        int           `yaml:"fetchBurst"`
}

// Development reports whether the service runs outside production.
func (c Config) Development() bool { return c.Env != "production" }

func defaults() Config {
	return Config{
		Env:               "development",
		ListenAddr:        ":8080",
		LogLevel:          "info",
		ScanPollInterval:  500 * time.Millisecond,
		ScanCacheWindow:   7 * 24 * time.Hour,
		ScanForceCooldown: 10 * time.Minute,
		FetchTimeout:      15 * time.Second,
		FetchRatePerSec:   5,
		FetchBurst:        10,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.Atoi(v); err == nil {
			return out
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.ParseFloat(v, 64); err == nil {
			return out
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.ParseBool(v); err == nil {
			return out
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if out, err := time.ParseDuration(v); err == nil {
			return out
		}
	}
	return def
}

// Load reads the optional YAML file named by BWA_CONFIG, then applies
// environment overrides. A missing DATABASE_URL is reported as an error
// alongside a usable config so callers can decide whether it is fatal.
func Load() (Config, error) {
	cfg := defaults()
	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Env = getenv("APP_ENV", cfg.Env)
	cfg.ListenAddr = getenv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DatabaseURL = getenv("DATABASE_URL", cfg.DatabaseURL)
	cfg.MigrateOnStart = getenvBool("MIGRATE_ON_START", cfg.MigrateOnStart)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.ScanWorkers = getenvInt("SCAN_WORKERS", cfg.ScanWorkers)
	cfg.ScanPollInterval = getenvDuration("SCAN_POLL_INTERVAL", cfg.ScanPollInterval)
	cfg.ScanCacheWindow = getenvDuration("SCAN_CACHE_WINDOW", cfg.ScanCacheWindow)
	cfg.ScanForceCooldown = getenvDuration("SCAN_FORCE_COOLDOWN", cfg.ScanForceCooldown)
	cfg.FetchTimeout = getenvDuration("FETCH_TIMEOUT", cfg.FetchTimeout)
	cfg.FetchRatePerSec = getenvFloat("FETCH_RATE_PER_SEC", cfg.FetchRatePerSec)
	cfg.FetchBurst = getenvInt("FETCH_BURST", cfg.FetchBurst)

	if cfg.DatabaseURL == "" {
		return cfg, ErrNoDatabase
	}
	return cfg, nil
}
