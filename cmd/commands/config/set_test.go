package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/dcm/internal/config"
)

// setupTestConfig points the config package at a temp file and returns its path.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

// execConfig creates the config command, wires up output buffers, runs with the
// given args, and returns what was written to stdout and stderr.
func execConfig(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestSet_APIURL_TrimsTrailingSlash(t *testing.T) {
	path := setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "api-url", "https://yw.example.com/")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"https://yw.example.com"`) {
		t.Errorf("expected confirmation with the URL, got: %s", stdout)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.APIURL != "https://yw.example.com" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
}

func TestSet_CustomerUUID_Lowercased(t *testing.T) {
	path := setupTestConfig(t)

	execConfig(t, "set", "customer-uuid", "F33E3C9B-75AB-4C30-80AD-CBA85646EA39")

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.CustomerUUID != "f33e3c9b-75ab-4c30-80ad-cba85646ea39" {
		t.Errorf("CustomerUUID = %q", cfg.CustomerUUID)
	}
}

func TestSet_InvalidValueRejected(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"api-url", "ftp://yw.example.com", "invalid api-url"},
		{"customer-uuid", "not-a-uuid", "invalid customer-uuid"},
		{"log-level", "loud", "invalid log level"},
		{"log-format", "xml", "invalid log format"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			path := setupTestConfig(t)

			stdout, stderr := execConfig(t, "set", tt.key, tt.value)

			if stdout != "" {
				t.Errorf("unexpected stdout: %s", stdout)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("expected %q, got: %s", tt.want, stderr)
			}

			cfg, err := config.LoadFrom(path)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}
			if got := config.Lookup(tt.key).Get(cfg); got != "" {
				t.Errorf("value persisted despite validation failure: %q", got)
			}
		})
	}
}

func TestSet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "bogus-key", "value")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
	if !strings.Contains(stderr, "api-url") {
		t.Errorf("expected valid keys list, got: %s", stderr)
	}
}
