package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "" {
		t.Errorf("expected empty APIURL, got %q", cfg.APIURL)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dcm", "config.json")

	want := &Config{
		APIURL:       "https://yw.example.com",
		CustomerUUID: "11111111-2222-3333-4444-555555555555",
		LogLevel:     "debug",
	}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")
	path := filepath.Join(dir, "config.json")

	cfg := &Config{APIURL: "https://yw.example.com"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Verify the file exists.
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSave_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	first := &Config{APIURL: "https://old.example.com"}
	if err := first.SaveTo(path); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	second := &Config{APIURL: "https://new.example.com"}
	if err := second.SaveTo(path); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got.APIURL != "https://new.example.com" {
		t.Errorf("expected APIURL %q, got %q", "https://new.example.com", got.APIURL)
	}
}

func TestLoad_EmptyObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("expected zero config (-want +got):\n%s", diff)
	}
}

func TestWithEnv_Overrides(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://env.example.com")
	t.Setenv(EnvCustomerUUID, "")

	cfg := Config{APIURL: "https://file.example.com", CustomerUUID: "c"}.WithEnv()
	if cfg.APIURL != "https://env.example.com" {
		t.Errorf("APIURL = %q, want env override", cfg.APIURL)
	}
	if cfg.CustomerUUID != "c" {
		t.Errorf("CustomerUUID = %q, want file value", cfg.CustomerUUID)
	}
}

func TestRequirePlatform(t *testing.T) {
	const customer = "11111111-2222-3333-4444-555555555555"
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		notConf bool
	}{
		{"complete", Config{APIURL: "https://yw.example.com", CustomerUUID: customer}, false, false},
		{"missing url", Config{CustomerUUID: customer}, true, true},
		{"missing customer", Config{APIURL: "https://yw.example.com"}, true, true},
		{"bad url", Config{APIURL: "yw.example.com", CustomerUUID: customer}, true, false},
		{"bad customer", Config{APIURL: "https://yw.example.com", CustomerUUID: "42"}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.RequirePlatform()
			if (err != nil) != tt.wantErr {
				t.Fatalf("RequirePlatform() error = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrNotConfigured) != tt.notConf {
				t.Errorf("errors.Is(ErrNotConfigured) = %v, want %v", !tt.notConf, tt.notConf)
			}
		})
	}
}
