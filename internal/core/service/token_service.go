package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/coderun/account-service/internal/core/domain"
)

// DefaultTokenTTL is the session token lifetime issued on login.
const DefaultTokenTTL = 120 * time.Minute

// TokenService signs and validates HMAC JWTs carrying the account email as
// subject and an absolute expiry. The signing secret and algorithm are fixed
// at construction; there is no rotation mechanism.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
}

// NewTokenService builds a TokenService for the given symmetric secret and
// algorithm identifier (HS256, HS384 or HS512).
func NewTokenService(secret, algorithm string) (*TokenService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("token: unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token: unsupported signing algorithm %q", algorithm)
	}
	return &TokenService{secret: []byte(secret), method: method}, nil
}

func (s *TokenService) Issue(email string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Validate returns the subject email of a well-signed, unexpired token.
// A token is invalid at or after its expiry instant.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrInvalidSignature
	}
	if !token.Valid {
		return "", domain.ErrInvalidSignature
	}
	if claims.Subject == "" {
		return "", domain.ErrMissingSubject
	}
	return claims.Subject, nil
}
