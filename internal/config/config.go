// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8787".
	Addr string `koanf:"addr"`

	// ShopDomain is the shop's myshopify domain the Admin API lives under.
	ShopDomain string `koanf:"shop_domain"`

	// APIVersion selects the Admin API version segment.
	APIVersion string `koanf:"api_version"`

	// AdminToken authenticates Admin API calls. Never logged.
	AdminToken string `koanf:"admin_token"`

	// AppProxySecret is the shared secret the app proxy signs bodies with.
	AppProxySecret string `koanf:"app_proxy_secret"`

	// AllowedOrigins is the comma-separated Origin allow-list for the
	// direct endpoint.
	AllowedOrigins string `koanf:"allowed_origins"`

	// RemoteTimeoutMS bounds each Admin API round-trip. Zero keeps calls
	// unbounded (cancelled only with the inbound request).
	RemoteTimeoutMS int `koanf:"remote_timeout_ms"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8787",
		APIVersion:      "2024-04",
		RemoteTimeoutMS: 0,
	}
}

// Origins splits the allow-list into trimmed, non-empty entries.
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// RequireCredentials checks the fields a running server cannot do without.
// Kept out of Load so tooling and tests can resolve partial configs.
func (c *Config) RequireCredentials() error {
	var missing []string
	if strings.TrimSpace(c.ShopDomain) == "" {
		missing = append(missing, "shop_domain")
	}
	if strings.TrimSpace(c.AdminToken) == "" {
		missing = append(missing, "admin_token")
	}
	if strings.TrimSpace(c.AppProxySecret) == "" {
		missing = append(missing, "app_proxy_secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}
	return nil
}
