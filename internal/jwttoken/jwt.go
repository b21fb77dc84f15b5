// Package jwttoken validates bearer tokens for the saved-analysis endpoints.
// Token issuance belongs to the organization's identity provider; this
// service only verifies HS256 signatures with a shared key.
package jwttoken

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"regent/internal/platform/middleware"
	dErrors "regent/pkg/domain-errors"
)

// Claims represents the JWT claims we accept on incoming tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// Service handles JWT validation against a shared signing key.
type Service struct {
	signingKey []byte
}

func NewService(signingKey string) *Service {
	return &Service{signingKey: []byte(signingKey)}
}

// ValidateToken verifies the token signature and expiry and returns the
// middleware claims used to identify the caller.
func (s *Service) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	return &middleware.JWTClaims{Subject: claims.Subject}, nil
}
