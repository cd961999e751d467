package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "libris/pkg/errors"
)

// TokenClaims is the subset of access-token claims the client can read
// locally. The token is opaque as a credential; claims are informational only
// since the client holds no verification key.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// InspectToken decodes the access token without signature verification,
// exposing the subject and expiry the backend embedded in it.
func InspectToken(token string) (TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, apperrors.ErrValidationRejected.
			WithMessage("access token is not a well-formed JWT").
			WithInternal(err)
	}

	out := TokenClaims{}
	if subject, err := claims.GetSubject(); err == nil {
		out.Subject = subject
	}
	if expiry, err := claims.GetExpirationTime(); err == nil && expiry != nil {
		out.ExpiresAt = expiry.Time
	}
	return out, nil
}
