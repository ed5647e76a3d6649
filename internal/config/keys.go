package config

import (
	"fmt"
	"net/url"
	"strings"

	"nathanbeddoewebdev/dcm/internal/logging"

	"github.com/google/uuid"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "api-url").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)

	// Validate rejects malformed values before Set. Nil accepts anything.
	Validate func(value string) error
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "api-url",
		Description: "Base URL of the platform (e.g. https://yw.example.com)",
		Get:         func(cfg *Config) string { return cfg.APIURL },
		Set:         func(cfg *Config, v string) { cfg.APIURL = strings.TrimRight(v, "/") },
		Validate:    validateAPIURL,
	},
	{
		Name:        "customer-uuid",
		Description: "Customer UUID whose providers are managed",
		Get:         func(cfg *Config) string { return cfg.CustomerUUID },
		Set:         func(cfg *Config, v string) { cfg.CustomerUUID = strings.ToLower(v) },
		Validate:    validateUUID,
	},
	{
		Name:        "log-level",
		Description: "Log level written to stderr: debug, info, warn, error, disabled",
		Get:         func(cfg *Config) string { return cfg.LogLevel },
		Set:         func(cfg *Config, v string) { cfg.LogLevel = strings.ToLower(v) },
		Validate: func(v string) error {
			_, err := logging.ParseLevel(v)
			return err
		},
	},
	{
		Name:        "log-format",
		Description: "Log format: auto, console or json",
		Get:         func(cfg *Config) string { return cfg.LogFormat },
		Set:         func(cfg *Config, v string) { cfg.LogFormat = strings.ToLower(v) },
		Validate: func(v string) error {
			switch strings.ToLower(v) {
			case "auto", "console", "json":
				return nil
			}
			return fmt.Errorf("invalid log format %q (want auto, console or json)", v)
		},
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}

func validateAPIURL(v string) error {
	u, err := url.Parse(v)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid api-url %q: want an http(s) URL", v)
	}
	return nil
}

func validateUUID(v string) error {
	if _, err := uuid.Parse(v); err != nil {
		return fmt.Errorf("invalid customer-uuid %q: %w", v, err)
	}
	return nil
}
