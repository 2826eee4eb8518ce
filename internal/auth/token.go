// Package auth implements stateless token authentication and route authorization
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that cannot be trusted.
// Malformed encoding, bad signature and elapsed expiry are deliberately
// collapsed into this single error so callers cannot probe token structure.
var ErrInvalidToken = errors.New("invalid token")

// TokenCodec issues and verifies signed, time-limited bearer tokens
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec creates a token codec signing with the given secret.
// Tokens expire ttl after issuance; a zero or negative ttl produces
// tokens that are already expired.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a signed token carrying the subject identity
func (c *TokenCodec) Issue(subject string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// ParseSubject verifies the token signature and expiry and returns the subject.
// A token is valid only while the current time is strictly before its expiry.
func (c *TokenCodec) ParseSubject(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// IsValid reports whether the token passes signature and expiry verification
func (c *TokenCodec) IsValid(tokenString string) bool {
	_, err := c.ParseSubject(tokenString)
	return err == nil
}
