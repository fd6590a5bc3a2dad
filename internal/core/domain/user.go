package domain

import (
	"errors"
	"time"
)

// ResendLimit caps how many confirmation emails a single account may request.
// Once SecurityCount reaches this value further resends are refused softly.
const ResendLimit = 10

var ErrInvalidEmailFormat = errors.New("incorrect e-mail form")
var ErrWeakPassword = errors.New("need to secure password")
var ErrDuplicateEmail = errors.New("duplicated e-mail")
var ErrIncorrectCredentials = errors.New("incorrect user")
var ErrRouteMismatch = errors.New("incorrect route")
var ErrAlreadyVerified = errors.New("already verified")
var ErrUserNotFound = errors.New("user not found")

// User models a registered account. Password always holds a bcrypt hash,
// never plaintext; Active flips false→true exactly once on confirmation.
type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	Name          string    `json:"name"`
	Active        bool      `json:"active"`
	SecurityCount int       `json:"-"`
	Profile       string    `json:"profile,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
