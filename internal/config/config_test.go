package config

import (
	"testing"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestCurrent_Defaults(t *testing.T) {
	resetViper(t)
	Load()

	s := Current()
	if s.RegistryURL != DefaultRegistryURL {
		t.Errorf("RegistryURL = %q, want %q", s.RegistryURL, DefaultRegistryURL)
	}
	if s.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want %d", s.TimeoutSeconds, DefaultTimeoutSeconds)
	}
	if s.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", s.MaxRetries, DefaultMaxRetries)
	}
	if s.BackoffFactor != DefaultBackoffFactor {
		t.Errorf("BackoffFactor = %v, want %v", s.BackoffFactor, DefaultBackoffFactor)
	}
	if s.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", s.APIKey)
	}
}

func TestEnvOverride(t *testing.T) {
	resetViper(t)
	t.Setenv("AIP_API_KEY", "sk-from-env")
	t.Setenv("AIP_REGISTRY_URL", "https://registry.example.com")
	Load()

	s := Current()
	if s.APIKey != "sk-from-env" {
		t.Errorf("APIKey = %q, want env value", s.APIKey)
	}
	if s.RegistryURL != "https://registry.example.com" {
		t.Errorf("RegistryURL = %q, want env value", s.RegistryURL)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	resetViper(t)
	Load()

	if _, err := Get("mirror"); err == nil {
		t.Fatal("expected error for unknown key")
	}
	if v, err := Get(KeyRegistryURL); err != nil || v == "" {
		t.Errorf("Get(registry_url) = %q, %v", v, err)
	}
}

func TestSet_RejectsUnknownKeyAndBadValues(t *testing.T) {
	resetViper(t)
	Load()

	if err := Set("color_scheme", "dark"); err == nil {
		t.Error("expected error for unknown key")
	}
	if err := Set(KeyTimeoutSeconds, "soon"); err == nil {
		t.Error("expected error for non-integer timeout")
	}
	if err := Set(KeyMaxRetries, "2.5"); err == nil {
		t.Error("expected error for non-integer retries")
	}
	if err := Set(KeyBackoffFactor, "fast"); err == nil {
		t.Error("expected error for non-numeric backoff factor")
	}
}

func TestSet_PersistsValue(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())
	Load()

	if err := Set(KeyRegistryURL, "https://registry.example.com"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// A fresh viper session must read the persisted value back.
	viper.Reset()
	Load()
	s := Current()
	if s.RegistryURL != "https://registry.example.com" {
		t.Errorf("RegistryURL = %q after reload", s.RegistryURL)
	}
}

func TestIsKnownKey(t *testing.T) {
	for _, key := range KnownKeys() {
		if !IsKnownKey(key) {
			t.Errorf("IsKnownKey(%q) = false", key)
		}
	}
	if IsKnownKey("registry") {
		t.Error("IsKnownKey(registry) = true, want canonical registry_url only")
	}
}
