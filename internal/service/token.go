package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the fixed lifetime of an issued session token.
const SessionTTL = 24 * time.Hour

// ErrUnauthorized is returned when a session token is missing, malformed,
// expired, or carries a bad signature.
var ErrUnauthorized = errors.New("unauthorized")

// TokenService issues and verifies signed session tokens. Tokens are
// stateless: verification needs only the signing secret, never shared
// state, so there is no server-side invalidation list.
type TokenService struct {
	secret []byte
}

// NewTokenService constructs a TokenService signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue produces an HS256-signed token embedding the identity in the
// userId claim with a fixed expiry of SessionTTL from now.
func (s *TokenService) Issue(identity string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": identity,
		"iat":    jwt.NewNumericDate(now),
		"exp":    jwt.NewNumericDate(now.Add(SessionTTL)),
	})
	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry of a token and resolves the
// identity it was issued for. All failure modes collapse to
// ErrUnauthorized.
func (s *TokenService) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrUnauthorized
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrUnauthorized
	}
	identity, ok := claims["userId"].(string)
	if !ok || identity == "" {
		return "", ErrUnauthorized
	}
	return identity, nil
}
