package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("signing-secret")

	token, err := svc.Issue()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.Verify(token))
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").Issue()
	require.NoError(t, err)

	require.ErrorIs(t, NewTokenService("secret-b").Verify(token), ErrInvalidToken)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := &TokenService{secret: []byte("signing-secret"), ttl: -time.Hour}

	token, err := svc.Issue()
	require.NoError(t, err)

	require.ErrorIs(t, NewTokenService("signing-secret").Verify(token), ErrInvalidToken)
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	svc := NewTokenService("signing-secret")

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		require.ErrorIs(t, svc.Verify(token), ErrInvalidToken, "token %q", token)
	}
}

func TestTokenService_Verify_WrongRole(t *testing.T) {
	secret := []byte("signing-secret")
	claims := jwt.MapClaims{
		"role": "viewer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	require.ErrorIs(t, NewTokenService("signing-secret").Verify(token), ErrInvalidToken)
}

func TestTokenService_Issue_MissingSecret(t *testing.T) {
	_, err := NewTokenService("").Issue()
	require.ErrorIs(t, err, ErrNotConfigured)
}
