package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Generator mints signed access tokens for authenticated users.
type Generator interface {
	GenerateToken(userID uint, email string) (string, error)
}

// hmacGenerator signs tokens with a shared HMAC secret. The same secret is
// read by AuthRequired when verifying.
type hmacGenerator struct {
	secret     []byte
	expiration time.Duration
}

var _ Generator = (*hmacGenerator)(nil)

// NewGenerator returns a Generator that issues HS256 tokens valid for
// the given duration.
func NewGenerator(secret string, expiration time.Duration) *hmacGenerator {
	return &hmacGenerator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken issues a token whose subject is the user ID. The email
// claim lets clients show the account without an extra lookup.
func (g *hmacGenerator) GenerateToken(userID uint, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"exp":   now.Add(g.expiration).Unix(),
		"iat":   now.Unix(),
		"email": email,
	})

	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
