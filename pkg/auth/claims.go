package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/mvillegas/cabstock-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uint
	FullName string
	Role     enums.UserRole
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to dashboard clients.
type AccessTokenClaims struct {
	UserID   uint           `json:"user_id"`
	FullName string         `json:"full_name"`
	Role     enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
