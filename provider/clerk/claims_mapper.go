package clerk

import (
	"context"

	"github.com/goliatone/go-vitals"
)

// ClaimsMapper transforms external claims to vitals JWTClaims.
type ClaimsMapper interface {
	// Map converts provider-specific claims to vitals JWTClaims.
	// Implementations should populate RegisteredClaims, UID, UserEmail,
	// GivenName, and FamilyName for full compatibility.
	Map(ctx context.Context, externalClaims any) (*vitals.JWTClaims, error)
}

// ClerkClaimsMapper maps Clerk JWT claims to vitals claims. Identity fields
// resolve through the shared claim key priority order, so tokens carrying
// first_name/last_name aliases map the same as given_name/family_name.
type ClerkClaimsMapper struct{}

// Map implements ClaimsMapper.
func (m *ClerkClaimsMapper) Map(ctx context.Context, externalClaims any) (*vitals.JWTClaims, error) {
	claims, ok := externalClaims.(*ClerkClaims)
	if !ok || claims == nil {
		return nil, vitals.ErrUnableToMapClaims
	}

	userID := vitals.UserIDFromClaims(claims.Raw)
	if userID == "" {
		userID = claims.RegisteredClaims.Subject
	}

	metadata := map[string]any{}
	if claims.SessionID != "" {
		metadata["session_id"] = claims.SessionID
	}
	for key, val := range claims.Metadata {
		metadata[key] = val
	}
	if len(metadata) == 0 {
		metadata = nil
	}

	return &vitals.JWTClaims{
		RegisteredClaims: claims.RegisteredClaims,
		UID:              userID,
		UserEmail:        vitals.EmailFromClaims(claims.Raw),
		GivenName:        vitals.FirstNameFromClaims(claims.Raw),
		FamilyName:       vitals.LastNameFromClaims(claims.Raw),
		Metadata:         metadata,
	}, nil
}
