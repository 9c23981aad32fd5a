package vitals

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the normalized identity fields carried by a
// validated token, regardless of which provider signed it.
type AuthClaims interface {
	Subject() string
	UserID() string
	Email() string
	FirstName() string
	LastName() string
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UID        string         `json:"uid,omitempty"`
	UserEmail  string         `json:"email,omitempty"`
	GivenName  string         `json:"given_name,omitempty"`
	FamilyName string         `json:"family_name,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"` // extension payload
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID, falling back to the subject claim
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Email returns the email claim
func (c *JWTClaims) Email() string {
	return c.UserEmail
}

// FirstName returns the given-name claim
func (c *JWTClaims) FirstName() string {
	return c.GivenName
}

// LastName returns the family-name claim
func (c *JWTClaims) LastName() string {
	return c.FamilyName
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// ClaimsMetadata exposes metadata extensions for optional context enrichment.
func (c *JWTClaims) ClaimsMetadata() map[string]any {
	return c.Metadata
}

// Claim key priority orders. Each extractor checks its keys left to right
// and stops at the first present value; providers differ on which alias
// they populate.
var (
	userIDClaimKeys    = []string{"sub", "user_id"}
	emailClaimKeys     = []string{"email", "email_address"}
	firstNameClaimKeys = []string{"given_name", "first_name"}
	lastNameClaimKeys  = []string{"family_name", "last_name"}
)

// UserIDFromClaims extracts the user identifier from a raw claims bag.
// Absence of every candidate key yields an empty string, not an error.
func UserIDFromClaims(claims map[string]any) string {
	return claimString(claims, userIDClaimKeys...)
}

// EmailFromClaims extracts the email address from a raw claims bag
func EmailFromClaims(claims map[string]any) string {
	return claimString(claims, emailClaimKeys...)
}

// FirstNameFromClaims extracts the first name from a raw claims bag
func FirstNameFromClaims(claims map[string]any) string {
	return claimString(claims, firstNameClaimKeys...)
}

// LastNameFromClaims extracts the last name from a raw claims bag
func LastNameFromClaims(claims map[string]any) string {
	return claimString(claims, lastNameClaimKeys...)
}

func claimString(claims map[string]any, keys ...string) string {
	if claims == nil {
		return ""
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		val, ok := claims[key]
		if !ok {
			continue
		}
		if str, ok := val.(string); ok && str != "" {
			return str
		}
	}
	return ""
}
