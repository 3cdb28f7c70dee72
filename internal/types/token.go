package types

import (
	"github.com/google/uuid"
)

// TokenClaims carries the authenticated identity extracted from a JWT.
type TokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}
