package clerk

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-vitals"
)

// TokenValidator validates Clerk-issued JWTs using JWKS.
type TokenValidator struct {
	config       Config
	jwks         *keyfunc.JWKS
	claimsMapper ClaimsMapper
	issuer       string
}

// NewTokenValidator creates a new Clerk token validator. The JWK Set is
// fetched eagerly and refreshed in the background for the life of the
// validator.
func NewTokenValidator(cfg Config) (*TokenValidator, error) {
	issuer := cfg.issuerURL()
	if issuer == "" {
		return nil, fmt.Errorf("clerk: issuer or domain is required")
	}

	issuerURL, err := url.Parse(issuer)
	if err != nil {
		return nil, fmt.Errorf("clerk: invalid issuer URL: %w", err)
	}
	if issuerURL.Scheme == "" || issuerURL.Host == "" {
		return nil, fmt.Errorf("clerk: invalid issuer URL: %s", issuer)
	}

	refreshInterval := cfg.RefreshInterval
	if refreshInterval == 0 {
		refreshInterval = time.Hour
	}

	jwks, err := keyfunc.Get(cfg.jwksURL(), keyfunc.Options{
		RefreshErrorHandler: func(err error) {
			log.Printf("failed to do a background refresh of JWT set: %s", err)
		},
		RefreshInterval:   refreshInterval,
		RefreshRateLimit:  time.Minute * 5,
		RefreshTimeout:    time.Second * 10,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("clerk: failed to fetch JWK Set: %w", err)
	}

	mapper := cfg.ClaimsMapper
	if mapper == nil {
		mapper = &ClerkClaimsMapper{}
	}

	return &TokenValidator{
		config:       cfg,
		jwks:         jwks,
		claimsMapper: mapper,
		issuer:       issuer,
	}, nil
}

// Close stops the background JWKS refresh goroutine.
func (v *TokenValidator) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}

// Validate implements vitals.TokenValidator.
func (v *TokenValidator) Validate(tokenString string) (vitals.AuthClaims, error) {
	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
	}
	if len(v.config.Audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(v.config.Audience...))
	}

	claims := &ClerkClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.jwks.Keyfunc, parserOptions...)
	if err != nil {
		return nil, normalizeValidationError(err)
	}

	if !token.Valid {
		return nil, vitals.ErrTokenMalformed
	}

	return v.claimsMapper.Map(context.Background(), claims)
}

func normalizeValidationError(err error) error {
	if err == nil {
		return nil
	}

	sentinel := vitals.ErrTokenMalformed
	switch {
	case stderrors.Is(err, jwt.ErrTokenExpired):
		sentinel = vitals.ErrTokenExpired
	case stderrors.Is(err, jwt.ErrTokenSignatureInvalid):
		sentinel = vitals.ErrTokenSignature
	case stderrors.Is(err, jwt.ErrTokenInvalidIssuer), stderrors.Is(err, jwt.ErrTokenInvalidAudience):
		sentinel = vitals.ErrTokenIssuerAudience
	}

	clone := sentinel.Clone().WithMetadata(map[string]any{
		"provider": "clerk",
		"cause":    err.Error(),
	})
	// keep the sentinel in the chain so errors.Is classifies the result
	clone.Source = sentinel
	return clone
}

var _ vitals.TokenValidator = (*TokenValidator)(nil)
