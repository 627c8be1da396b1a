package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Calendar != DefaultCalendar || cfg.APIBaseURL != DefaultAPIBaseURL || cfg.ServerPort != DefaultServerPort || cfg.LogLevel != "info" {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if cfg.Timeout() != DefaultAPITimeout {
		t.Errorf("Expected default timeout, got %s", cfg.Timeout())
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", configFile)
	want := &Config{Calendar: "Work", APIBaseURL: "https://tasks.example.com", APITimeout: "5s", ServerPort: "8080", LogLevel: "debug"}
	if err := SaveFile(path, want); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if *got != *want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
	if got.Timeout() != 5*time.Second {
		t.Errorf("Expected 5s, got %s", got.Timeout())
	}
}

func TestLoadFileRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFile)
	if err := os.WriteFile(path, []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("Expected a decode error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TASKDECK_API_BASE_URL", "http://api.internal:9000")
	t.Setenv("PORT", "7000")
	t.Setenv("TASKDECK_API_TIMEOUT", "bogus")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), configFile))
	if err != nil {
		t.Fatal(err)
	}
	cfg.applyEnv()

	if cfg.APIBaseURL != "http://api.internal:9000" || cfg.ServerPort != "7000" {
		t.Errorf("Expected env overrides, got %+v", cfg)
	}
	if cfg.Calendar != DefaultCalendar {
		t.Errorf("Expected unset variables to leave the calendar alone, got %s", cfg.Calendar)
	}
	if cfg.Timeout() != DefaultAPITimeout {
		t.Errorf("Expected an unparsable timeout to fall back, got %s", cfg.Timeout())
	}
}
