package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/coderun/account-service/internal/core/domain"
	"github.com/coderun/account-service/internal/core/ports"
)

// AccountService implements the account lifecycle: signup, login, password
// reset and email confirmation. Email delivery is handed to the notifier and
// never awaited.
type AccountService struct {
	repo     ports.UserRepository
	tokens   ports.TokenService
	notifier ports.Notifier
	baseURL  string
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewAccountService(
	repo ports.UserRepository,
	tokens ports.TokenService,
	notifier ports.Notifier,
	baseURL string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AccountService{
		repo:     repo,
		tokens:   tokens,
		notifier: notifier,
		baseURL:  strings.TrimRight(baseURL, "/"),
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Signup registers a new unverified account and dispatches a confirmation
// email. The duplicate check here is advisory; the repository maps a
// concurrent unique-violation on insert to ErrDuplicateEmail as well.
func (s *AccountService) Signup(ctx context.Context, email, password, name string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:     email,
		Password:  hash,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return err
	}

	// The profile URL depends on the generated id, hence a second write.
	profile := fmt.Sprintf("%s/image/profile/%d", s.baseURL, created.ID)
	if err := s.repo.UpdateProfile(ctx, created.ID, profile); err != nil {
		return err
	}

	s.notifier.SendConfirmation(created.Email, created.ID)
	return nil
}

// Login authenticates an account. A missing user and a wrong password are
// indistinguishable to the caller. Accounts that have not confirmed their
// email authenticate successfully but receive no session token.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validatePassword(password); err != nil {
		return nil, "", err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrIncorrectCredentials
		}
		return nil, "", err
	}
	if !verifyPassword(password, user.Password) {
		return nil, "", domain.ErrIncorrectCredentials
	}

	if !user.Active {
		return user, "", nil
	}

	token, err := s.tokens.Issue(user.Email, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ResetPassword replaces the stored credential with the bcrypt hash of the
// SHA-256 digest of a fresh temporary password, then emails the plaintext
// temporary password to the account. A missing user collapses into the same
// mismatch error as a wrong id.
func (s *AccountService) ResetPassword(ctx context.Context, userID int64, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrRouteMismatch
		}
		return err
	}
	if user.ID != userID {
		return domain.ErrRouteMismatch
	}

	temp, err := temporaryPassword()
	if err != nil {
		return err
	}
	hash, err := hashPassword(digest(temp))
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.notifier.SendTempPassword(email, temp)
	return nil
}

// CheckEmail reports whether an address is still free to register.
func (s *AccountService) CheckEmail(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return domain.ErrDuplicateEmail
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	return err
}

// ResendConfirmation re-sends the confirmation email. Existence and
// verified-state checks run before the counter check; once the resend limit
// is reached the request is refused softly with (false, nil) and neither the
// counter nor the outbox moves.
func (s *AccountService) ResendConfirmation(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if user.Active {
		return false, domain.ErrAlreadyVerified
	}
	if user.SecurityCount >= domain.ResendLimit {
		s.log.Warn().Str("email", email).Msg("confirmation resend limit reached")
		return false, nil
	}

	if _, err := s.repo.IncrementSecurityCount(ctx, user.ID); err != nil {
		return false, err
	}
	s.notifier.SendConfirmation(user.Email, user.ID)
	return true, nil
}

// ConfirmEmail marks the account active. Activating an already-active
// account is a no-op, so the operation is idempotent.
func (s *AccountService) ConfirmEmail(ctx context.Context, email string, userID int64) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrRouteMismatch
		}
		return err
	}
	if user.ID != userID {
		return domain.ErrRouteMismatch
	}
	return s.repo.Activate(ctx, user.ID)
}

// CurrentUser resolves a bearer token to its account. Every failure mode —
// bad signature, expiry, missing subject, vanished account — surfaces as an
// unauthenticated outcome.
func (s *AccountService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	email, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}
