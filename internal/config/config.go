// Package config provides configuration loading from environment variables
// and an optional TOML file.
package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/usestring/storefront-search/pkg/client"
	"github.com/usestring/storefront-search/pkg/pricing"
)

// ConfigFileEnv names the environment variable pointing at the TOML overlay.
const ConfigFileEnv = "STOREFRONT_CONFIG_FILE"

// Config holds all configuration for the storefront search binaries.
type Config struct {
	BaseURL            string        // STOREFRONT_BASE_URL, default "http://localhost:8080/api"
	APIToken           string        // STOREFRONT_API_TOKEN, default ""
	HTTPClientTimeout  time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 10000ms (10s)
	InitTimeout        time.Duration // INIT_TIMEOUT_MS, default 15000ms (15s)
	ProductsPath       string        // PRODUCTS_PATH, default "/products"
	CategoriesPath     string        // CATEGORIES_PATH, default "/categories"
	ProductsSelector   string        // PRODUCTS_SELECTOR, default "."
	CategoriesSelector string        // CATEGORIES_SELECTOR, default "."
	ResultCacheItems   int           // RESULT_CACHE_MAX_ITEMS, default 256
	ImageCacheItems    int           // IMAGE_CACHE_MAX_ITEMS, default 512
	ImageMaxBytes      int64         // IMAGE_MAX_BYTES, default 5242880 (5MB)
	SquareTolerance    float64       // SQUARE_TOLERANCE, default 0.05
	CurrencySymbol     string        // CURRENCY_SYMBOL, default "$"
	Locale             string        // LOCALE, default "en"

	// Named discount tiers, only settable from the config file.
	Tiers []pricing.Tier

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults,
// then applies the file named by STOREFRONT_CONFIG_FILE if set.
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL:            getEnvString("STOREFRONT_BASE_URL", client.DefaultBaseURL),
		APIToken:           getEnvString("STOREFRONT_API_TOKEN", ""),
		HTTPClientTimeout:  getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", 10000),
		InitTimeout:        getEnvDurationMs("INIT_TIMEOUT_MS", 15000),
		ProductsPath:       getEnvString("PRODUCTS_PATH", client.DefaultProductsPath),
		CategoriesPath:     getEnvString("CATEGORIES_PATH", client.DefaultCategoriesPath),
		ProductsSelector:   getEnvString("PRODUCTS_SELECTOR", "."),
		CategoriesSelector: getEnvString("CATEGORIES_SELECTOR", "."),
		ResultCacheItems:   getEnvInt("RESULT_CACHE_MAX_ITEMS", 256),
		ImageCacheItems:    getEnvInt("IMAGE_CACHE_MAX_ITEMS", 512),
		ImageMaxBytes:      int64(getEnvInt("IMAGE_MAX_BYTES", 5<<20)),
		SquareTolerance:    getEnvFloat("SQUARE_TOLERANCE", 0.05),
		CurrencySymbol:     getEnvString("CURRENCY_SYMBOL", "$"),
		Locale:             getEnvString("LOCALE", "en"),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// ClientOptions returns the listing client options described by c.
func (c *Config) ClientOptions() []client.Option {
	opts := []client.Option{
		client.WithBaseURL(c.BaseURL),
		client.WithHTTPClient(&http.Client{Timeout: c.HTTPClientTimeout}),
		client.WithProductsPath(c.ProductsPath),
		client.WithCategoriesPath(c.CategoriesPath),
		client.WithProductsSelector(c.ProductsSelector),
		client.WithCategoriesSelector(c.CategoriesSelector),
	}
	if c.APIToken != "" {
		opts = append(opts, client.WithAuthToken(c.APIToken))
	}
	return opts
}

// Tier looks up a configured tier by name.
func (c *Config) Tier(name string) (pricing.Tier, bool) {
	for _, t := range c.Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return pricing.Tier{}, false
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}

// fileConfig mirrors Config for the TOML overlay. Pointer fields distinguish
// absent keys from zero values.
type fileConfig struct {
	BaseURL            *string  `toml:"base_url"`
	APIToken           *string  `toml:"api_token"`
	HTTPClientTimeout  *int     `toml:"http_client_timeout_ms"`
	InitTimeout        *int     `toml:"init_timeout_ms"`
	ProductsPath       *string  `toml:"products_path"`
	CategoriesPath     *string  `toml:"categories_path"`
	ProductsSelector   *string  `toml:"products_selector"`
	CategoriesSelector *string  `toml:"categories_selector"`
	ResultCacheItems   *int     `toml:"result_cache_max_items"`
	ImageCacheItems    *int     `toml:"image_cache_max_items"`
	ImageMaxBytes      *int64   `toml:"image_max_bytes"`
	SquareTolerance    *float64 `toml:"square_tolerance"`
	CurrencySymbol     *string  `toml:"currency_symbol"`
	Locale             *string  `toml:"locale"`

	Tiers []struct {
		Name            string  `toml:"name"`
		DiscountPercent float64 `toml:"discount_percent"`
	} `toml:"tiers"`

	Log struct {
		Level      *string `toml:"level"`
		File       *string `toml:"file"`
		MaxSizeMB  *int    `toml:"max_size_mb"`
		MaxBackups *int    `toml:"max_backups"`
		MaxAgeDays *int    `toml:"max_age_days"`
		Compress   *bool   `toml:"compress"`
	} `toml:"log"`
}

// ApplyFile overlays the TOML file at path onto c. Keys present in the file
// win over environment values and defaults; unknown keys are rejected.
func (c *Config) ApplyFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var fc fileConfig
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	set(&c.BaseURL, fc.BaseURL)
	set(&c.APIToken, fc.APIToken)
	if fc.HTTPClientTimeout != nil {
		c.HTTPClientTimeout = time.Duration(*fc.HTTPClientTimeout) * time.Millisecond
	}
	if fc.InitTimeout != nil {
		c.InitTimeout = time.Duration(*fc.InitTimeout) * time.Millisecond
	}
	set(&c.ProductsPath, fc.ProductsPath)
	set(&c.CategoriesPath, fc.CategoriesPath)
	set(&c.ProductsSelector, fc.ProductsSelector)
	set(&c.CategoriesSelector, fc.CategoriesSelector)
	set(&c.ResultCacheItems, fc.ResultCacheItems)
	set(&c.ImageCacheItems, fc.ImageCacheItems)
	set(&c.ImageMaxBytes, fc.ImageMaxBytes)
	set(&c.SquareTolerance, fc.SquareTolerance)
	set(&c.CurrencySymbol, fc.CurrencySymbol)
	set(&c.Locale, fc.Locale)

	for _, t := range fc.Tiers {
		c.Tiers = append(c.Tiers, pricing.Tier{Name: t.Name, DiscountPercent: t.DiscountPercent})
	}

	set(&c.LogLevel, fc.Log.Level)
	set(&c.LogFile, fc.Log.File)
	set(&c.LogMaxSizeMB, fc.Log.MaxSizeMB)
	set(&c.LogMaxBackups, fc.Log.MaxBackups)
	set(&c.LogMaxAgeDays, fc.Log.MaxAgeDays)
	set(&c.LogCompress, fc.Log.Compress)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
