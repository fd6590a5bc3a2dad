package mail

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// UnwrapAppPassword decodes the JWT-wrapped SMTP app password from the
// environment. The wrapper is signed with the same symmetric secret and
// algorithm as session tokens and carries the plaintext under the "pw"
// claim — a crude secret-wrapping scheme kept for config compatibility.
func UnwrapAppPassword(wrapped, secret, algorithm string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(wrapped, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != algorithm {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("unwrap app password: %w", err)
	}

	pw, ok := claims["pw"].(string)
	if !ok || pw == "" {
		return "", fmt.Errorf("unwrap app password: missing pw claim")
	}
	return pw, nil
}
