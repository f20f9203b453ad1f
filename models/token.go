package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the payload of a bearer token: who the caller is, plus the
// registered expiry/issuer claims.
//
// It lives in models because services and middleware both need it.
type TokenClaims struct {
	Username string `json:"username"`
	ID       string `json:"id"`
	jwt.RegisteredClaims
}
