package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-users-api/internal/domain"
	"github.com/go-users-api/internal/pkg/id"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the JWT payload fields.
type Claims struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Boleta string `json:"boleta,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 session tokens. The signing key, issuer
// and audience come from process configuration and are injected at
// construction.
type Provider struct {
	key      []byte
	issuer   string
	audience string
}

func NewProvider(secret, issuer, audience string) (*Provider, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}
	return &Provider{key: []byte(secret), issuer: issuer, audience: audience}, nil
}

// Issue mints a session token for the given user, valid until expiry.
// Every token carries a fresh jti so individual sessions stay distinguishable
// in audit trails even though no server-side session state exists.
func (p *Provider) Issue(u *domain.User, expiry time.Time) (string, error) {
	boleta := ""
	if u.Boleta != nil {
		boleta = *u.Boleta
	}
	claims := Claims{
		Email:  u.Email,
		Name:   u.FirstName + " " + u.LastName,
		Boleta: boleta,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.UserID,
			Issuer:    p.issuer,
			Audience:  jwt.ClaimStrings{p.audience},
			ID:        id.New(),
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.key)
}

// Verify parses and validates a presented token: signature method, signature,
// issuer, audience, and expiry.
func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.key, nil
	},
		jwt.WithIssuer(p.issuer),
		jwt.WithAudience(p.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
