package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Claims is the verified payload of an access token.
type Claims struct {
	Subject string `json:"sub"`
	Role    Role   `json:"role"`
	ID      uint   `json:"id"`
}

var errInvalidToken = errors.New("invalid token")

// TokenService signs and verifies access tokens. Verification is stateless;
// tokens stay valid until natural expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Sign(subject string, role Role, id uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"id":   id,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify collapses every failure mode (bad signature, expiry, garbage
// payload) into a single error so callers cannot leak the reason.
func (s *TokenService) Verify(tokenStr string) (Claims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return Claims{}, errInvalidToken
	}
	mapc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errInvalidToken
	}
	sub, _ := mapc["sub"].(string)
	roleStr, _ := mapc["role"].(string)
	role := Role(roleStr)
	if sub == "" || (role != RoleOwner && role != RoleAdmin && role != RoleUser) {
		return Claims{}, errInvalidToken
	}
	var id uint
	if f, ok := mapc["id"].(float64); ok {
		id = uint(f)
	}
	return Claims{Subject: sub, Role: role, ID: id}, nil
}
