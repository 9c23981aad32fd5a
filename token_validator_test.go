package vitals_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-vitals"
)

func staticClaims(userID string) vitals.AuthClaims {
	return &vitals.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		UID:              userID,
	}
}

func TestTokenValidatorFunc(t *testing.T) {
	fn := vitals.TokenValidatorFunc(func(token string) (vitals.AuthClaims, error) {
		return staticClaims("user-1"), nil
	})

	claims, err := fn.Validate("any-token")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
}

func TestTokenValidatorFuncNil(t *testing.T) {
	var fn vitals.TokenValidatorFunc

	_, err := fn.Validate("any-token")
	assert.ErrorIs(t, err, vitals.ErrTokenMalformed)
}

func TestMultiTokenValidator_FirstSuccessWins(t *testing.T) {
	second := vitals.TokenValidatorFunc(func(token string) (vitals.AuthClaims, error) {
		t.Fatal("second validator should not be consulted")
		return nil, nil
	})
	first := vitals.TokenValidatorFunc(func(token string) (vitals.AuthClaims, error) {
		return staticClaims("external-user"), nil
	})

	multi := vitals.NewMultiTokenValidator(first, second)

	claims, err := multi.Validate("token")
	require.NoError(t, err)
	assert.Equal(t, "external-user", claims.UserID())
}

func TestMultiTokenValidator_FallsThroughToNext(t *testing.T) {
	first := vitals.TokenValidatorFunc(func(token string) (vitals.AuthClaims, error) {
		return nil, vitals.ErrTokenSignature
	})
	second := vitals.TokenValidatorFunc(func(token string) (vitals.AuthClaims, error) {
		return staticClaims("local-user"), nil
	})

	multi := vitals.NewMultiTokenValidator(first, second)

	claims, err := multi.Validate("token")
	require.NoError(t, err)
	assert.Equal(t, "local-user", claims.UserID())
}

func TestMultiTokenValidator_ExpiredShortCircuits(t *testing.T) {
	first := vitals.TokenValidatorFunc(func(token string) (vitals.AuthClaims, error) {
		return nil, vitals.ErrTokenExpired
	})
	second := vitals.TokenValidatorFunc(func(token string) (vitals.AuthClaims, error) {
		t.Fatal("expired tokens should not reach the fallback validator")
		return nil, nil
	})

	multi := vitals.NewMultiTokenValidator(first, second)

	_, err := multi.Validate("token")
	assert.ErrorIs(t, err, vitals.ErrTokenExpired)
}

func TestMultiTokenValidator_AllFailReturnsLastError(t *testing.T) {
	first := vitals.TokenValidatorFunc(func(token string) (vitals.AuthClaims, error) {
		return nil, vitals.ErrTokenSignature
	})
	second := vitals.TokenValidatorFunc(func(token string) (vitals.AuthClaims, error) {
		return nil, vitals.ErrTokenIssuerAudience
	})

	multi := vitals.NewMultiTokenValidator(first, second)

	_, err := multi.Validate("token")
	assert.ErrorIs(t, err, vitals.ErrTokenIssuerAudience)
}

func TestMultiTokenValidator_FiltersNilValidators(t *testing.T) {
	valid := vitals.TokenValidatorFunc(func(token string) (vitals.AuthClaims, error) {
		return staticClaims("user-1"), nil
	})

	multi := vitals.NewMultiTokenValidator(nil, valid, nil)

	claims, err := multi.Validate("token")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
}

func TestMultiTokenValidator_Empty(t *testing.T) {
	multi := vitals.NewMultiTokenValidator()

	_, err := multi.Validate("token")
	assert.ErrorIs(t, err, vitals.ErrTokenMalformed)
}
