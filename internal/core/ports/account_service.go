package ports

import (
	"context"

	"github.com/coderun/account-service/internal/core/domain"
)

// AccountService owns the account lifecycle: signup, login, password reset
// and email confirmation.
type AccountService interface {
	Signup(ctx context.Context, email, password, name string) error
	// Login returns the authenticated user and a session token. The token is
	// empty while the account has not yet confirmed its email address.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	ResetPassword(ctx context.Context, userID int64, email string) error
	// CheckEmail returns domain.ErrDuplicateEmail when the address is taken.
	CheckEmail(ctx context.Context, email string) error
	// ResendConfirmation reports whether a confirmation email was dispatched.
	// It returns (false, nil) once the resend limit is exhausted.
	ResendConfirmation(ctx context.Context, email string) (bool, error)
	ConfirmEmail(ctx context.Context, email string, userID int64) error
	// CurrentUser resolves a bearer token to the account it was issued for.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}
