package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the server configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}
	if c.Server.WriteRateLimit < 0 {
		return fmt.Errorf("server.write_rate_limit must be non-negative (got %d)", c.Server.WriteRateLimit)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) exceeds max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	return nil
}

// Validate performs business-rule validation on the client configuration.
func (c *ClientConfig) Validate() error {
	s := &c.Client

	if strings.TrimSpace(s.StorePath) == "" {
		return fmt.Errorf("client.store_path is required")
	}

	u, err := url.Parse(s.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("client.server_url must be an absolute URL (got %q)", s.ServerURL)
	}

	switch s.Unit {
	case "kg", "lb":
	default:
		return fmt.Errorf("client.unit must be kg or lb (got %q)", s.Unit)
	}

	if s.AutosaveDebounce <= 0 {
		return fmt.Errorf("client.autosave_debounce must be > 0")
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("client.request_timeout must be > 0")
	}
	if s.RetryInterval < 0 {
		return fmt.Errorf("client.retry_interval must be >= 0")
	}

	return nil
}
