package farmacia

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// IdentityClaims is the slice of the token the client is allowed to interpret:
// the subject (account email) and the rol claim. Everything else in the token
// is opaque; the client never verifies the signature because it holds no key.
type IdentityClaims struct {
	jwt.RegisteredClaims
	Rol string `json:"rol,omitempty"`
}

// Email returns the identity claim carried in the subject.
func (c *IdentityClaims) Email() string {
	return c.RegisteredClaims.Subject
}

// Role returns the parsed role claim.
func (c *IdentityClaims) Role() (Role, bool) {
	return ParseRole(c.Rol)
}

// Expires returns the expiration time, zero when the token carries none.
func (c *IdentityClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// DecodeToken extracts IdentityClaims from a raw bearer token without
// verifying its signature. The remote authority already validated the token
// when it issued it; the only checks available locally are structural: the
// token must parse, carry a subject and a known role, and not be past its exp
// claim as of now.
func DecodeToken(raw string, now time.Time) (*IdentityClaims, error) {
	if raw == "" {
		return nil, ErrTokenMalformed
	}

	claims := &IdentityClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if exp := claims.Expires(); !exp.IsZero() && exp.Before(now) {
		return nil, ErrTokenExpired
	}

	if claims.Email() == "" {
		return nil, ErrTokenMalformed.Clone().WithMetadata(map[string]any{
			"claim": "sub",
		})
	}

	if _, ok := claims.Role(); !ok {
		return nil, ErrTokenMalformed.Clone().WithMetadata(map[string]any{
			"claim": "rol",
		})
	}

	return claims, nil
}
