package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims are the session claims issued by the shared-password gate.
// The system assumes a single administrative actor.
type JWTClaims struct {
	Actor string `json:"actor"`
	jwt.RegisteredClaims
}
