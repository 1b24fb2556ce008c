// Package auth resolves session tokens issued by the hosted auth provider.
// Tokens are HS256 JWTs whose subject is the participant id.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/adamatova/community-api/internal/ports/secondary"
)

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type JWTProvider struct {
	secret []byte
}

func NewJWTProvider(secret string) *JWTProvider {
	return &JWTProvider{secret: []byte(secret)}
}

func (p *JWTProvider) Verify(token string) (*secondary.Identity, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid || c.Subject == "" {
		return nil, fmt.Errorf("invalid session token")
	}
	return &secondary.Identity{ID: c.Subject, Email: c.Email}, nil
}
