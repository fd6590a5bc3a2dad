package service

import (
	"strings"

	"github.com/coderun/account-service/internal/core/domain"
)

const passwordLength = 64

// validateEmail applies the historical loose shape check: an "@" and a "."
// must both be present, and the first two dot-separated segments after the
// "@" must be non-empty. Deliberately not RFC 5322 validation — existing
// clients rely on exactly this behaviour.
func validateEmail(email string) error {
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return domain.ErrInvalidEmailFormat
	}
	tail := strings.Split(email, "@")[1]
	segments := strings.Split(tail, ".")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return domain.ErrInvalidEmailFormat
	}
	return nil
}

// validatePassword requires exactly 64 characters: clients submit the hex
// SHA-256 of the real password, never the plaintext itself.
func validatePassword(password string) error {
	if len(password) != passwordLength {
		return domain.ErrWeakPassword
	}
	return nil
}
