package clerk

import (
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"
)

// ClerkClaims holds the claims Clerk puts on its session tokens, plus the
// raw claim map so the mapper can honor alternate key spellings.
type ClerkClaims struct {
	jwt.RegisteredClaims

	Email        string         `json:"email"`
	EmailAddress string         `json:"email_address"`
	GivenName    string         `json:"given_name"`
	FirstName    string         `json:"first_name"`
	FamilyName   string         `json:"family_name"`
	LastName     string         `json:"last_name"`
	SessionID    string         `json:"sid"`
	Metadata     map[string]any `json:"public_metadata"`
	Raw          map[string]any `json:"-"`
}

// UnmarshalJSON captures both known and raw claims for custom mapping.
func (c *ClerkClaims) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	type alias ClerkClaims
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*c = ClerkClaims(decoded)
	c.Raw = raw
	return nil
}
