package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewFromEnv(t *testing.T) {
	// Helper function to set environment variables for a test
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	t.Run("Success", func(t *testing.T) {
		setEnv("MEALPLAN_API_URL", "http://backend.test/")
		setEnv("MEALPLAN_API_KEY", "kid:abcd")
		setEnv("MEALPLAN_USER_ID", "7")
		setEnv("PORT", "")
		setEnv("FETCH_TIMEOUT", "")
		setEnv("CORS_ORIGINS", "http://localhost:3000, http://localhost:5173")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.APIURL != "http://backend.test" {
			t.Errorf("Expected APIURL to be 'http://backend.test', got '%s'", cfg.APIURL)
		}
		if cfg.APIKey != "kid:abcd" {
			t.Errorf("Expected APIKey to be 'kid:abcd', got '%s'", cfg.APIKey)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected default Port '8080', got '%s'", cfg.Port)
		}
		if cfg.FetchTimeout != 15*time.Second {
			t.Errorf("Expected default FetchTimeout 15s, got %v", cfg.FetchTimeout)
		}
		if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://localhost:5173" {
			t.Errorf("Unexpected CORSOrigins: %v", cfg.CORSOrigins)
		}
	})

	t.Run("InvalidFetchTimeout", func(t *testing.T) {
		setEnv("MEALPLAN_API_URL", "http://backend.test")
		setEnv("MEALPLAN_API_KEY", "kid:abcd")
		setEnv("MEALPLAN_USER_ID", "7")
		setEnv("FETCH_TIMEOUT", "soon")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for invalid FETCH_TIMEOUT, got nil")
		}
	})

	missing := []string{"MEALPLAN_API_URL", "MEALPLAN_API_KEY", "MEALPLAN_USER_ID"}
	for _, key := range missing {
		t.Run("Missing_"+key, func(t *testing.T) {
			setEnv("MEALPLAN_API_URL", "http://backend.test")
			setEnv("MEALPLAN_API_KEY", "kid:abcd")
			setEnv("MEALPLAN_USER_ID", "7")
			setEnv("FETCH_TIMEOUT", "")

			os.Unsetenv(key)

			_, err := NewFromEnv()
			if err == nil {
				t.Fatalf("Expected an error for missing %s, got nil", key)
			}
			expectedError := key + " environment variable not set"
			if err.Error() != expectedError {
				t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	for _, key := range []string{"MEALPLAN_API_URL", "MEALPLAN_API_KEY", "MEALPLAN_USER_ID", "PORT", "FETCH_TIMEOUT", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api_url: http://file.test
api_key: kid:beef
user_id: "42"
port: "9090"
fetch_timeout: 3s
cors_origins:
  - http://localhost:3000
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Run("FileValues", func(t *testing.T) {
		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.APIURL != "http://file.test" || cfg.UserID != "42" || cfg.Port != "9090" {
			t.Errorf("Unexpected config: %+v", cfg)
		}
		if cfg.FetchTimeout != 3*time.Second {
			t.Errorf("Expected FetchTimeout 3s, got %v", cfg.FetchTimeout)
		}
	})

	t.Run("EnvOverridesFile", func(t *testing.T) {
		t.Setenv("PORT", "7070")
		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Port != "7070" {
			t.Errorf("Expected Port '7070', got '%s'", cfg.Port)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatal("Expected an error for missing file, got nil")
		}
	})
}
