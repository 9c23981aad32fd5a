package clerk

import (
	"fmt"
	"strings"
	"time"
)

// Config holds Clerk configuration for token validation.
type Config struct {
	// Domain is the Clerk instance domain (e.g., "example.clerk.accounts.dev").
	Domain string

	// Audience is the API identifier(s) to validate against.
	Audience []string

	// Issuer overrides the default issuer URL (optional).
	// Default: "https://{Domain}".
	Issuer string

	// JWKSURL overrides the JWK Set URL derived from the issuer (optional).
	JWKSURL string

	// RefreshInterval is how often the JWKS cache refreshes in the
	// background. Default: 1 hour.
	RefreshInterval time.Duration

	// ClaimsMapper customizes claim mapping (optional).
	ClaimsMapper ClaimsMapper
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(domain string, audience []string) Config {
	return Config{
		Domain:          domain,
		Audience:        audience,
		RefreshInterval: time.Hour,
	}
}

func (c Config) issuerURL() string {
	if c.Issuer != "" {
		return normalizeIssuer(c.Issuer)
	}

	domain := strings.TrimSpace(c.Domain)
	if domain == "" {
		return ""
	}

	if strings.HasPrefix(domain, "http://") || strings.HasPrefix(domain, "https://") {
		return normalizeIssuer(domain)
	}

	return fmt.Sprintf("https://%s", strings.TrimSuffix(domain, "/"))
}

func (c Config) jwksURL() string {
	if c.JWKSURL != "" {
		return c.JWKSURL
	}

	issuer := c.issuerURL()
	if issuer == "" {
		return ""
	}

	return issuer + "/.well-known/jwks.json"
}

func normalizeIssuer(issuer string) string {
	issuer = strings.TrimSpace(issuer)
	return strings.TrimSuffix(issuer, "/")
}
