package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/coderun/account-service/internal/core/domain"
)

// uniqueViolation is the SQLSTATE raised when the email unique index trips.
const uniqueViolation = "23505"

// UserRepository persists accounts in the users table.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, password, name, active, security_count, profile, created_at, updated_at
	          FROM users WHERE email = $1`

	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.Name,
		&user.Active, &user.SecurityCount, &user.Profile,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Create inserts a new account row. A unique-violation on the email index is
// reported as ErrDuplicateEmail so the pre-insert duplicate check losing a
// race cannot produce two rows for one address.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (email, password, name, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Password, user.Name, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, profile string) error {
	return r.update(ctx, id, `UPDATE users SET profile = $2, updated_at = $3 WHERE id = $1`, profile)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.update(ctx, id, `UPDATE users SET password = $2, updated_at = $3 WHERE id = $1`, passwordHash)
}

// Activate marks the account verified. Re-activating an active account
// rewrites the same value, which keeps the operation idempotent.
func (r *UserRepository) Activate(ctx context.Context, id int64) error {
	query := `UPDATE users SET active = TRUE, updated_at = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("activate user: %w", err)
	}
	return checkAffected(res)
}

func (r *UserRepository) IncrementSecurityCount(ctx context.Context, id int64) (int, error) {
	query := `UPDATE users SET security_count = security_count + 1, updated_at = $2
	          WHERE id = $1
	          RETURNING security_count`

	var count int
	err := r.db.QueryRowContext(ctx, query, id, time.Now().UTC()).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("increment security count: %w", err)
	}
	return count, nil
}

func (r *UserRepository) update(ctx context.Context, id int64, query, value string) error {
	res, err := r.db.ExecContext(ctx, query, id, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
