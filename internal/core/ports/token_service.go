package ports

import "time"

// TokenService issues and validates signed, time-bounded bearer tokens.
type TokenService interface {
	Issue(email string, ttl time.Duration) (string, error)
	// Validate returns the subject email. Failures are one of
	// domain.ErrInvalidSignature, domain.ErrTokenExpired or
	// domain.ErrMissingSubject; callers must surface all of them uniformly.
	Validate(token string) (string, error)
}
