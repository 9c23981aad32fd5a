package vitals_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/goliatone/go-vitals"
)

func TestJWTClaims_Accessors(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	exp := now.Add(time.Hour)

	claims := &vitals.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "subject-123",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UID:        "user-123",
		UserEmail:  "user@example.com",
		GivenName:  "Ada",
		FamilyName: "Lovelace",
	}

	assert.Equal(t, "subject-123", claims.Subject())
	assert.Equal(t, "user-123", claims.UserID())
	assert.Equal(t, "user@example.com", claims.Email())
	assert.Equal(t, "Ada", claims.FirstName())
	assert.Equal(t, "Lovelace", claims.LastName())
	assert.Equal(t, now, claims.IssuedAt())
	assert.Equal(t, exp, claims.Expires())
}

func TestJWTClaims_UserIDFallsBackToSubject(t *testing.T) {
	claims := &vitals.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "subject-only"},
	}

	assert.Equal(t, "subject-only", claims.UserID())
}

func TestJWTClaims_ZeroTimes(t *testing.T) {
	claims := &vitals.JWTClaims{}

	assert.True(t, claims.IssuedAt().IsZero())
	assert.True(t, claims.Expires().IsZero())
}

func TestClaimExtractors_PriorityOrder(t *testing.T) {
	tests := []struct {
		name    string
		claims  map[string]any
		extract func(map[string]any) string
		want    string
	}{
		{
			name:    "sub wins over user_id",
			claims:  map[string]any{"sub": "from-sub", "user_id": "from-user-id"},
			extract: vitals.UserIDFromClaims,
			want:    "from-sub",
		},
		{
			name:    "user_id used when sub absent",
			claims:  map[string]any{"user_id": "from-user-id"},
			extract: vitals.UserIDFromClaims,
			want:    "from-user-id",
		},
		{
			name:    "email wins over email_address",
			claims:  map[string]any{"email": "a@b.com", "email_address": "c@d.com"},
			extract: vitals.EmailFromClaims,
			want:    "a@b.com",
		},
		{
			name:    "email_address used when email absent",
			claims:  map[string]any{"email_address": "c@d.com"},
			extract: vitals.EmailFromClaims,
			want:    "c@d.com",
		},
		{
			name:    "given_name wins over first_name",
			claims:  map[string]any{"given_name": "Ada", "first_name": "Grace"},
			extract: vitals.FirstNameFromClaims,
			want:    "Ada",
		},
		{
			name:    "first_name used when given_name absent",
			claims:  map[string]any{"first_name": "Grace"},
			extract: vitals.FirstNameFromClaims,
			want:    "Grace",
		},
		{
			name:    "family_name wins over last_name",
			claims:  map[string]any{"family_name": "Lovelace", "last_name": "Hopper"},
			extract: vitals.LastNameFromClaims,
			want:    "Lovelace",
		},
		{
			name:    "last_name used when family_name absent",
			claims:  map[string]any{"last_name": "Hopper"},
			extract: vitals.LastNameFromClaims,
			want:    "Hopper",
		},
		{
			name:    "absent keys yield empty string",
			claims:  map[string]any{"unrelated": "value"},
			extract: vitals.EmailFromClaims,
			want:    "",
		},
		{
			name:    "non string values are skipped",
			claims:  map[string]any{"email": 42, "email_address": "c@d.com"},
			extract: vitals.EmailFromClaims,
			want:    "c@d.com",
		},
		{
			name:    "nil claims yield empty string",
			claims:  nil,
			extract: vitals.UserIDFromClaims,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.extract(tt.claims))
		})
	}
}
