package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Set up test environment variables
	os.Setenv("botToken", "test-token")
	os.Setenv("PORT", "3001")
	os.Setenv("enviroment", "test")
	os.Setenv("lockTickSeconds", "30")
	defer func() {
		os.Unsetenv("botToken")
		os.Unsetenv("PORT")
		os.Unsetenv("enviroment")
		os.Unsetenv("lockTickSeconds")
	}()

	// Reset global config
	resetForTesting()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if config.BotToken != "test-token" {
		t.Errorf("BotToken = %v, want %v", config.BotToken, "test-token")
	}

	if config.Port != "3001" {
		t.Errorf("Port = %v, want %v", config.Port, "3001")
	}

	if config.Environment != "test" {
		t.Errorf("Environment = %v, want %v", config.Environment, "test")
	}

	if config.LockTickSeconds != 30 {
		t.Errorf("LockTickSeconds = %v, want %v", config.LockTickSeconds, 30)
	}

	// Defaults applied at load, not re-derived later
	if config.MinJailOccupancy != 2 {
		t.Errorf("MinJailOccupancy = %v, want default %v", config.MinJailOccupancy, 2)
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	if got := getEnv("TEST_VAR", "default"); got != "test-value" {
		t.Errorf("getEnv() = %v, want %v", got, "test-value")
	}

	if got := getEnv("NON_EXISTENT_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %v, want %v", got, "default")
	}
}

func TestGetEnvInt(t *testing.T) {
	os.Setenv("TEST_INT_VAR", "7")
	os.Setenv("TEST_BAD_INT_VAR", "siete")
	defer func() {
		os.Unsetenv("TEST_INT_VAR")
		os.Unsetenv("TEST_BAD_INT_VAR")
	}()

	if got := getEnvInt("TEST_INT_VAR", 1); got != 7 {
		t.Errorf("getEnvInt() = %v, want %v", got, 7)
	}

	if got := getEnvInt("TEST_BAD_INT_VAR", 1); got != 1 {
		t.Errorf("getEnvInt() = %v, want fallback %v", got, 1)
	}

	if got := getEnvInt("NON_EXISTENT_VAR", 42); got != 42 {
		t.Errorf("getEnvInt() = %v, want default %v", got, 42)
	}
}
