package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is the validity window of a signed admin token.
const tokenTTL = 7 * 24 * time.Hour

// TokenService is the stateless strategy: signed tokens carrying an embedded
// role claim and expiry, verified per request with no server-side store.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: tokenTTL}
}

// Issue signs a token with an admin role claim and a 7-day expiry.
func (s *TokenService) Issue() (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNotConfigured
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature, expiry and the role claim. Every failure mode
// collapses to ErrInvalidToken.
func (s *TokenService) Verify(token string) error {
	if len(s.secret) == 0 {
		return ErrInvalidToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != "admin" {
		return ErrInvalidToken
	}
	return nil
}
