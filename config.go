package vitals

import (
	"os"
	"strings"
	"time"
)

// SimpleConfig is an env-friendly Config implementation
type SimpleConfig struct {
	SigningKey      string
	SigningMethod   string
	ContextKey      string
	TokenExpiration time.Duration
	TokenLookup     string
	AuthScheme      string
	Issuer          string
	Audience        []string
}

var _ Config = (*SimpleConfig)(nil)

// NewConfigFromEnv builds a SimpleConfig from AUTH_* environment variables,
// falling back to sensible defaults for everything but the signing key.
func NewConfigFromEnv() *SimpleConfig {
	cfg := &SimpleConfig{
		SigningKey:      os.Getenv("AUTH_SIGNING_KEY"),
		SigningMethod:   envOr("AUTH_SIGNING_METHOD", "HS256"),
		ContextKey:      envOr("AUTH_CONTEXT_KEY", "user"),
		TokenExpiration: DefaultTokenTTL,
		TokenLookup:     envOr("AUTH_TOKEN_LOOKUP", "header:Authorization"),
		AuthScheme:      envOr("AUTH_SCHEME", "Bearer"),
		Issuer:          os.Getenv("AUTH_ISSUER"),
	}

	if raw := os.Getenv("AUTH_TOKEN_EXPIRATION"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.TokenExpiration = d
		}
	}

	if raw := os.Getenv("AUTH_AUDIENCE"); raw != "" {
		for _, aud := range strings.Split(raw, ",") {
			if aud = strings.TrimSpace(aud); aud != "" {
				cfg.Audience = append(cfg.Audience, aud)
			}
		}
	}

	return cfg
}

func (c *SimpleConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *SimpleConfig) GetSigningMethod() string {
	if c.SigningMethod == "" {
		return "HS256"
	}
	return c.SigningMethod
}

func (c *SimpleConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return "user"
	}
	return c.ContextKey
}

func (c *SimpleConfig) GetTokenExpiration() time.Duration {
	if c.TokenExpiration <= 0 {
		return DefaultTokenTTL
	}
	return c.TokenExpiration
}

func (c *SimpleConfig) GetTokenLookup() string {
	if c.TokenLookup == "" {
		return "header:Authorization"
	}
	return c.TokenLookup
}

func (c *SimpleConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return "Bearer"
	}
	return c.AuthScheme
}

func (c *SimpleConfig) GetIssuer() string {
	return c.Issuer
}

func (c *SimpleConfig) GetAudience() []string {
	return c.Audience
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
