package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aip-labs/aip/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys. `config set` rejects anything else.
const (
	KeyRegistryURL    = "registry_url"
	KeyAPIKey         = "api_key"
	KeyTimeoutSeconds = "timeout_seconds"
	KeyMaxRetries     = "max_retries"
	KeyBackoffFactor  = "backoff_factor"
)

// Defaults applied when a key is absent from the config file and the
// environment.
const (
	DefaultRegistryURL    = "http://localhost:3000"
	DefaultTimeoutSeconds = 30
	DefaultMaxRetries     = 3
	DefaultBackoffFactor  = 0.5
)

// knownKeys lists every accepted key in display order.
var knownKeys = []string{
	KeyRegistryURL,
	KeyAPIKey,
	KeyTimeoutSeconds,
	KeyMaxRetries,
	KeyBackoffFactor,
}

// Settings is the resolved client configuration.
type Settings struct {
	RegistryURL    string
	APIKey         string
	TimeoutSeconds int
	MaxRetries     int
	BackoffFactor  float64
}

// Dir returns the path to the AIP config directory (~/.aip/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.aip/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Environment variables use the AIP_ prefix, so AIP_API_KEY overrides
// the api_key file entry.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyRegistryURL, DefaultRegistryURL)
	viper.SetDefault(KeyTimeoutSeconds, DefaultTimeoutSeconds)
	viper.SetDefault(KeyMaxRetries, DefaultMaxRetries)
	viper.SetDefault(KeyBackoffFactor, DefaultBackoffFactor)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current returns the resolved settings. Call Load first.
func Current() Settings {
	return Settings{
		RegistryURL:    viper.GetString(KeyRegistryURL),
		APIKey:         viper.GetString(KeyAPIKey),
		TimeoutSeconds: viper.GetInt(KeyTimeoutSeconds),
		MaxRetries:     viper.GetInt(KeyMaxRetries),
		BackoffFactor:  viper.GetFloat64(KeyBackoffFactor),
	}
}

// KnownKeys returns every accepted configuration key.
func KnownKeys() []string {
	keys := make([]string, len(knownKeys))
	copy(keys, knownKeys)
	return keys
}

// IsKnownKey reports whether key is an accepted configuration key.
func IsKnownKey(key string) bool {
	for _, k := range knownKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns a config value by key. Unknown keys are an error.
func Get(key string) (string, error) {
	if !IsKnownKey(key) {
		return "", unknownKeyErr(key)
	}
	return viper.GetString(key), nil
}

// Set validates, writes, and persists a config key-value pair.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return unknownKeyErr(key)
	}
	if err := checkValue(key, value); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// checkValue rejects values that cannot be parsed for numeric keys.
func checkValue(key, value string) error {
	switch key {
	case KeyTimeoutSeconds, KeyMaxRetries:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("value for %s must be an integer, got %q", key, value)
		}
	case KeyBackoffFactor:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("value for %s must be a number, got %q", key, value)
		}
	}
	return nil
}

func unknownKeyErr(key string) error {
	return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(knownKeys, ", "))
}
