package vitals_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-vitals"
)

var testSigningKey = []byte("test-signing-key-for-unit-tests")

func newTestTokenService() *vitals.TokenServiceImpl {
	return vitals.NewTokenService(
		testSigningKey,
		time.Hour,
		"https://vitals.test",
		[]string{"vitals-api"},
		nil,
	)
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	svc := newTestTokenService()

	identity := testIdentity{
		id:        "7f9c71c4-6f9a-4bb0-a0c3-a8d8f94af599",
		email:     "user@example.com",
		firstName: "Ada",
		lastName:  "Lovelace",
	}

	token, err := svc.Generate(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, identity.id, claims.UserID())
	assert.Equal(t, identity.id, claims.Subject())
	assert.Equal(t, identity.email, claims.Email())
	assert.Equal(t, identity.firstName, claims.FirstName())
	assert.Equal(t, identity.lastName, claims.LastName())
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expires(), time.Minute)
}

func TestTokenService_GenerateNilIdentity(t *testing.T) {
	svc := newTestTokenService()

	_, err := svc.Generate(nil)
	assert.Error(t, err)
}

func TestTokenService_GenerateSetsUniqueTokenID(t *testing.T) {
	svc := newTestTokenService()
	identity := testIdentity{id: "user-1", email: "a@b.com"}

	first, err := svc.Generate(identity)
	require.NoError(t, err)

	second, err := svc.Generate(identity)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each token should carry a fresh jti")
}

func TestTokenService_ValidateErrors(t *testing.T) {
	svc := newTestTokenService()

	signWith := func(key []byte, claims *vitals.JWTClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString(key)
		require.NoError(t, err)
		return signed
	}

	now := time.Now()
	goodClaims := func() *vitals.JWTClaims {
		return &vitals.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "https://vitals.test",
				Subject:   "user-1",
				Audience:  jwt.ClaimStrings{"vitals-api"},
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
			UID: "user-1",
		}
	}

	t.Run("expired token", func(t *testing.T) {
		claims := goodClaims()
		claims.RegisteredClaims.IssuedAt = jwt.NewNumericDate(now.Add(-2 * time.Hour))
		claims.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Hour))

		_, err := svc.Validate(signWith(testSigningKey, claims))
		assert.ErrorIs(t, err, vitals.ErrTokenExpired)
		assert.True(t, vitals.IsTokenExpiredError(err))
	})

	t.Run("wrong signing key", func(t *testing.T) {
		_, err := svc.Validate(signWith([]byte("a-completely-different-key"), goodClaims()))
		assert.ErrorIs(t, err, vitals.ErrTokenSignature)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := goodClaims()
		claims.RegisteredClaims.Issuer = "https://someone-else.test"

		_, err := svc.Validate(signWith(testSigningKey, claims))
		assert.ErrorIs(t, err, vitals.ErrTokenIssuerAudience)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := goodClaims()
		claims.RegisteredClaims.Audience = jwt.ClaimStrings{"some-other-api"}

		_, err := svc.Validate(signWith(testSigningKey, claims))
		assert.ErrorIs(t, err, vitals.ErrTokenIssuerAudience)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Validate("not.a.jwt")
		assert.ErrorIs(t, err, vitals.ErrTokenMalformed)
		assert.True(t, vitals.IsMalformedError(err))
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.Validate("")
		assert.ErrorIs(t, err, vitals.ErrTokenMalformed)
	})

	t.Run("unexpected signing algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, goodClaims())
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		assert.Error(t, err)
	})
}

func TestTokenService_SignClaimsNil(t *testing.T) {
	svc := newTestTokenService()

	_, err := svc.SignClaims(nil)
	assert.Error(t, err)
}
