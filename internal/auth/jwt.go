package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenHeader carries the service token from the gateway to the server.
	TokenHeader = "X-Gateway-Token"

	tokenIssuer = "shareit-gateway"
)

var ErrActorMismatch = errors.New("service token subject does not match acting user")

// Claims defines the JWT claims of a service token.
// Subject is the forwarded X-Sharer-User-Id value, empty for anonymous routes.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenManager signs and verifies the short-lived tokens that prove
// a request went through the gateway.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a new token manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Generate creates a signed token bound to the given actor header value.
func (m *TokenManager) Generate(actor string) (string, error) {
	now := m.now().UTC()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   actor,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign service token: %w", err)
	}
	return signed, nil
}

// Verify validates tokenStr and checks that it was issued for actor.
func (m *TokenManager) Verify(tokenStr, actor string) error {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return fmt.Errorf("failed to parse service token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return errors.New("invalid service token")
	}
	if claims.Subject != actor {
		return ErrActorMismatch
	}
	return nil
}
