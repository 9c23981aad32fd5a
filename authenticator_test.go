package vitals_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-vitals"
)

func newTestAuthenticator(provider vitals.IdentityProvider) *vitals.Auther {
	return vitals.NewAuthenticator(provider, &vitals.SimpleConfig{
		SigningKey:      string(testSigningKey),
		TokenExpiration: time.Hour,
		Issuer:          "https://vitals.test",
		Audience:        []string{"vitals-api"},
	})
}

func TestAuther_Login(t *testing.T) {
	provider := &MockIdentityProvider{}
	auth := newTestAuthenticator(provider)

	identity := testIdentity{
		id:        "user-1",
		email:     "ada@example.com",
		firstName: "Ada",
		lastName:  "Lovelace",
	}
	provider.On("VerifyIdentity", mock.Anything, "ada@example.com", "Secret123!").
		Return(identity, nil)

	token, err := auth.Login(context.Background(), "ada@example.com", "Secret123!")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.TokenService().Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "ada@example.com", claims.Email())
	provider.AssertExpectations(t)
}

func TestAuther_LoginVerificationFailure(t *testing.T) {
	provider := &MockIdentityProvider{}
	auth := newTestAuthenticator(provider)

	provider.On("VerifyIdentity", mock.Anything, "ada@example.com", "wrong").
		Return(nil, vitals.ErrMismatchedHashAndPassword)

	_, err := auth.Login(context.Background(), "ada@example.com", "wrong")
	assert.ErrorIs(t, err, vitals.ErrMismatchedHashAndPassword)
}

func TestAuther_LoginNilIdentity(t *testing.T) {
	provider := &MockIdentityProvider{}
	auth := newTestAuthenticator(provider)

	provider.On("VerifyIdentity", mock.Anything, "ada@example.com", "Secret123!").
		Return(nil, nil)

	_, err := auth.Login(context.Background(), "ada@example.com", "Secret123!")
	assert.ErrorIs(t, err, vitals.ErrIdentityNotFound)
}

func TestAuther_SessionFromToken(t *testing.T) {
	provider := &MockIdentityProvider{}
	auth := newTestAuthenticator(provider)

	identity := testIdentity{
		id:    "user-1",
		email: "ada@example.com",
	}
	provider.On("VerifyIdentity", mock.Anything, mock.Anything, mock.Anything).
		Return(identity, nil)

	token, err := auth.Login(context.Background(), "ada@example.com", "Secret123!")
	require.NoError(t, err)

	session, err := auth.SessionFromToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", session.GetUserID())
	assert.Equal(t, "ada@example.com", session.GetEmail())
	assert.Equal(t, "https://vitals.test", session.GetIssuer())
	assert.Equal(t, []string{"vitals-api"}, session.GetAudience())
	require.NotNil(t, session.GetIssuedAt())
	assert.WithinDuration(t, time.Now(), *session.GetIssuedAt(), time.Minute)
}

func TestAuther_SessionFromTokenInvalid(t *testing.T) {
	auth := newTestAuthenticator(&MockIdentityProvider{})

	_, err := auth.SessionFromToken("not-a-token")
	assert.True(t, vitals.IsAuthValidationError(err))
}

func TestAuther_WithTokenValidator(t *testing.T) {
	auth := newTestAuthenticator(&MockIdentityProvider{})

	called := false
	auth.WithTokenValidator(vitals.TokenValidatorFunc(func(token string) (vitals.AuthClaims, error) {
		called = true
		return staticClaims("external-user"), nil
	}))

	session, err := auth.SessionFromToken("opaque-external-token")
	require.NoError(t, err)

	assert.True(t, called, "a configured validator must replace the local token service")
	assert.Equal(t, "external-user", session.GetUserID())
}

func TestAuther_IdentityFromSession(t *testing.T) {
	provider := &MockIdentityProvider{}
	auth := newTestAuthenticator(provider)

	identity := testIdentity{id: "user-1", email: "ada@example.com"}
	provider.On("FindIdentityByIdentifier", mock.Anything, "user-1").
		Return(identity, nil)

	got, err := auth.IdentityFromSession(context.Background(), &vitals.SessionObject{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email())
}
