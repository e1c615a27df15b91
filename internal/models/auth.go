package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims are the claims carried by Supabase issued access tokens.
type AccessClaims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
