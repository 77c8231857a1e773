package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

const (
	ProfileIDKey ContextKey = "profileID"
)

// JWTCustomClaims はJWTに含めるクレーム
type JWTCustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
