package farmacia

import "fmt"

// Principal is the identity derived from the current token. It never exists
// independently of a token and is always re-derivable from it alone.
type Principal struct {
	Email string
	Role  Role
}

// IsAdmin checks if the principal carries the admin role
func (p Principal) IsAdmin() bool {
	return p.Role.IsAdmin()
}

func (p Principal) String() string {
	return fmt.Sprintf("principal=%s role=%s", p.Email, p.Role)
}

// principalFromClaims builds the Principal for already-decoded claims. Claims
// reaching here passed DecodeToken, so the role is known valid.
func principalFromClaims(claims *IdentityClaims) (Principal, error) {
	if claims == nil {
		return Principal{}, ErrTokenMalformed
	}

	role, ok := claims.Role()
	if !ok {
		return Principal{}, ErrTokenMalformed
	}

	return Principal{
		Email: claims.Email(),
		Role:  role,
	}, nil
}
