// Package auth issues and verifies the admin bearer token.
//
// There is a single admin account whose credentials come from configuration.
// A successful Login returns an HS256-signed JWT; Authorize accepts only
// tokens signed with the same secret and carrying the admin subject.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	adminSubject = "admin"
	adminRole    = "admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	username string
	password string
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthenticator returns an Authenticator for the configured admin pair.
// A zero ttl issues tokens without an expiry.
func NewAuthenticator(username, password, secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{
		username: username,
		password: password,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Login compares the pair against the configured credentials and returns a
// signed token on an exact match.
func (a *Authenticator) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}

	now := a.now()
	claims := Claims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  adminSubject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if a.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(a.ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Authorize validates a token previously issued by Login.
func (a *Authenticator) Authorize(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrUnauthorized
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.Subject != adminSubject || claims.Role != adminRole {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
