// Package config loads the server configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAddress         = ":8080"
	defaultDSN             = "file:kinovault.db?cache=shared&_pragma=foreign_keys(1)"
	defaultTokenExpiration = 5 * 60 * 60 // seconds, matches the token TTL contract
	defaultContextKey      = "user"
	defaultAuthScheme      = "Bearer"
)

// Config carries everything the binary needs to boot. The auth getters
// satisfy auth.Config.
type Config struct {
	Address         string
	DSN             string
	SigningKey      string
	TokenExpiration int
	ContextKey      string
	AuthScheme      string
	Issuer          string
	Audience        []string
	Debug           bool
}

// Load reads the environment, after folding in an optional .env file.
// A missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Address:         envOr("SERVER_ADDRESS", defaultAddress),
		DSN:             envOr("DATABASE_DSN", defaultDSN),
		SigningKey:      os.Getenv("JWT_SIGNING_KEY"),
		TokenExpiration: defaultTokenExpiration,
		ContextKey:      envOr("AUTH_CONTEXT_KEY", defaultContextKey),
		AuthScheme:      envOr("AUTH_SCHEME", defaultAuthScheme),
		Issuer:          os.Getenv("JWT_ISSUER"),
		Debug:           envBool("DEBUG"),
	}

	if v := os.Getenv("JWT_TOKEN_EXPIRATION"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		cfg.TokenExpiration = seconds
	}

	if v := os.Getenv("JWT_AUDIENCE"); v != "" {
		for _, aud := range strings.Split(v, ",") {
			if aud = strings.TrimSpace(aud); aud != "" {
				cfg.Audience = append(cfg.Audience, aud)
			}
		}
	}

	return cfg, nil
}

func (c *Config) GetSigningKey() string   { return c.SigningKey }
func (c *Config) GetTokenExpiration() int { return c.TokenExpiration }
func (c *Config) GetContextKey() string   { return c.ContextKey }
func (c *Config) GetAuthScheme() string   { return c.AuthScheme }
func (c *Config) GetIssuer() string       { return c.Issuer }
func (c *Config) GetAudience() []string   { return c.Audience }

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
