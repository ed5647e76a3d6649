package auth

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/dcm/internal/config"
	"nathanbeddoewebdev/dcm/internal/services/auth"
)

func setupAuth(t *testing.T, apiURL string) *auth.MockStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	t.Setenv(config.EnvAPIURL, "")

	if apiURL != "" {
		if err := (&config.Config{APIURL: apiURL}).SaveTo(path); err != nil {
			t.Fatalf("save config: %v", err)
		}
	}

	store := auth.NewMockStore()
	orig := storeFactory
	storeFactory = func() auth.Store { return store }
	t.Cleanup(func() { storeFactory = orig })
	return store
}

func execAuth(t *testing.T, stdin string, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestLogin_TokenFlagUsesConfiguredHost(t *testing.T) {
	store := setupAuth(t, "https://YW.example.com:9000")

	stdout, stderr := execAuth(t, "", "login", "--token", " secret ")
	if stderr != "" {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "yw.example.com:9000") {
		t.Errorf("stdout = %q", stdout)
	}

	got, err := store.GetToken("yw.example.com:9000")
	if err != nil || got != "secret" {
		t.Errorf("GetToken = %q, %v", got, err)
	}
}

func TestLogin_ReadsStdin(t *testing.T) {
	store := setupAuth(t, "")

	execAuth(t, "piped-token\n", "login", "https://other.example.com")

	got, err := store.GetToken("other.example.com")
	if err != nil || got != "piped-token" {
		t.Errorf("GetToken = %q, %v", got, err)
	}
}

func TestLogin_NoURLConfigured(t *testing.T) {
	setupAuth(t, "")

	_, stderr := execAuth(t, "", "login", "--token", "x")
	if !strings.Contains(stderr, "api-url") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestStatusAndLogout(t *testing.T) {
	store := setupAuth(t, "https://yw.example.com")

	stdout, _ := execAuth(t, "", "status")
	if !strings.Contains(stdout, "yw.example.com: not logged in") {
		t.Errorf("status before login = %q", stdout)
	}

	if err := store.SetToken("yw.example.com", "secret"); err != nil {
		t.Fatal(err)
	}
	stdout, _ = execAuth(t, "", "status")
	if !strings.Contains(stdout, "yw.example.com: logged in") {
		t.Errorf("status after login = %q", stdout)
	}

	stdout, _ = execAuth(t, "", "logout")
	if !strings.Contains(stdout, "Removed token for yw.example.com") {
		t.Errorf("logout = %q", stdout)
	}
	stdout, _ = execAuth(t, "", "logout")
	if !strings.Contains(stdout, "Not logged in") {
		t.Errorf("second logout = %q", stdout)
	}
}
