package auth

import (
	"errors"

	"github.com/saodatov/hotel-pms/internal/models"
)

var (
	ErrUnauthenticated    = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Principal is the resolved identity an operation runs as. It is produced
// by the token middleware; the domain services only consume it.
type Principal struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// RequireRole is the gate in front of every operation. A nil principal is
// an authentication failure, a principal with the wrong role an
// authorization failure. Pure check, no side effects.
func RequireRole(p *Principal, allowed ...models.Role) error {
	if p == nil {
		return ErrUnauthenticated
	}
	for _, role := range allowed {
		if p.Role == role {
			return nil
		}
	}
	return ErrForbidden
}
