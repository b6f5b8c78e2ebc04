package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Claims ties a token to the server-side session it was issued for.
type Claims struct {
	UserID    int64     `json:"uid"`
	SessionID string    `json:"sid"`
	Kind      TokenKind `json:"typ"`
	jwt.RegisteredClaims
}
