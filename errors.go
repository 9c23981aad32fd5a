package vitals

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryAuth).
	WithTextCode("IDENTITY_NOT_FOUND")

// ErrMismatchedHashAndPassword covers both unknown-email and wrong-password
// failures so callers cannot tell registered accounts apart.
var ErrMismatchedHashAndPassword = errors.New("credentials do not match", errors.CategoryAuth).
	WithTextCode("CREDENTIALS_MISMATCH").
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty inputs to the password hasher
var ErrNoEmptyString = errors.New("value should not be an empty string", errors.CategoryBadInput).
	WithTextCode("EMPTY_STRING")

// ErrTokenMalformed is a token we could not parse at all
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is a structurally valid token outside its validity window
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenSignature is a token signed with a key we do not trust
var ErrTokenSignature = errors.New("token signature is invalid", errors.CategoryAuth).
	WithTextCode("TOKEN_SIGNATURE").
	WithCode(errors.CodeUnauthorized)

// ErrTokenIssuerAudience is a token minted by another issuer or for another
// audience. It must never validate here, no matter how well formed.
var ErrTokenIssuerAudience = errors.New("token issuer or audience mismatch", errors.CategoryAuth).
	WithTextCode("TOKEN_ISSUER_AUDIENCE").
	WithCode(errors.CodeUnauthorized)

// ErrAccountInactive is a deactivated account trying to authenticate
var ErrAccountInactive = errors.New("account is inactive", errors.CategoryAuth).
	WithTextCode("ACCOUNT_INACTIVE").
	WithCode(errors.CodeUnauthorized)

// ErrInvalidEmail rejects syntactically malformed email addresses at
// registration time. Caller visible and specific.
var ErrInvalidEmail = errors.New("invalid email address", errors.CategoryValidation).
	WithTextCode("INVALID_EMAIL")

// ErrWeakPassword rejects passwords that fail the registration policy.
// Caller visible and specific.
var ErrWeakPassword = errors.New("password does not meet the required policy", errors.CategoryValidation).
	WithTextCode("WEAK_PASSWORD")

// ErrRegistrationUnavailable is what a duplicate email becomes before it
// leaves the service layer. The HTTP response is identical to a transient
// registration failure so the endpoint never confirms an email is taken.
var ErrRegistrationUnavailable = errors.New("registration temporarily unavailable", errors.CategoryConflict).
	WithTextCode("REGISTRATION_UNAVAILABLE")

// ErrStorageQuotaExceeded rejects uploads that would push a user over quota
var ErrStorageQuotaExceeded = errors.New("storage quota exceeded", errors.CategoryConflict).
	WithTextCode("STORAGE_QUOTA_EXCEEDED")

// ErrUnableToMapClaims unable to get claims from token
var ErrUnableToMapClaims = errors.New("unable to map claims", errors.CategoryAuth).
	WithTextCode("CLAIMS_UNMAPPABLE")

// ErrRecordNotOwned guards cross-user access to readings, images, and albums
var ErrRecordNotOwned = errors.New("record does not belong to the requesting user", errors.CategoryAuth).
	WithTextCode("RECORD_NOT_OWNED").
	WithCode(errors.CodeForbidden)

// sentinelWithMetadata copies a sentinel and attaches request metadata. The
// copy keeps the sentinel as its source so errors.Is still classifies it.
func sentinelWithMetadata(sentinel *errors.Error, metadata map[string]any) *errors.Error {
	clone := sentinel.Clone().WithMetadata(metadata)
	clone.Source = sentinel
	return clone
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsAuthValidationError reports whether err belongs to the validation class
// the gate must collapse into a uniform unauthenticated response.
func IsAuthValidationError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenSignature) ||
		errors.Is(err, ErrTokenIssuerAudience)
}
