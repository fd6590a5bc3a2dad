package ports

import (
	"context"

	"github.com/coderun/account-service/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, profile string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Activate(ctx context.Context, id int64) error
	IncrementSecurityCount(ctx context.Context, id int64) (int, error)
}
