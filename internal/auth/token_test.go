package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	s := NewTokenService("test-secret", time.Hour)
	tok, err := s.Sign("boss", RoleOwner, 7)
	require.NoError(t, err)

	claims, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "boss", claims.Subject)
	assert.Equal(t, RoleOwner, claims.Role)
	assert.Equal(t, uint(7), claims.ID)
}

func TestTokenExpired(t *testing.T) {
	s := NewTokenService("test-secret", -time.Minute)
	tok, err := s.Sign("boss", RoleOwner, 7)
	require.NoError(t, err)

	_, err = s.Verify(tok)
	assert.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	signer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)
	tok, err := signer.Sign("boss", RoleOwner, 7)
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	s := NewTokenService("test-secret", time.Hour)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := s.Verify(tok)
		assert.Error(t, err, "token %q", tok)
	}
}

func TestTokenUnknownRole(t *testing.T) {
	s := NewTokenService("test-secret", time.Hour)
	tok, err := s.Sign("boss", Role("superuser"), 7)
	require.NoError(t, err)

	_, err = s.Verify(tok)
	assert.Error(t, err)
}

func TestTokenRejectsNoneAlgorithm(t *testing.T) {
	s := NewTokenService("test-secret", time.Hour)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  "boss",
		"role": "owner",
		"id":   7,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Verify(tok)
	assert.Error(t, err)
}
