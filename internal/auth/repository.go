package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tournamentpro/backend/internal/models"
	"github.com/tournamentpro/backend/pkg/apperror"
)

const uniqueViolation = "23505"

// Repository handles the admin allow-list and admin credentials.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// AllowedName reports whether email is on the admin allow-list and returns the listed name.
func (r *Repository) AllowedName(ctx context.Context, email string) (string, bool, error) {
	var name string
	err := r.pool.QueryRow(ctx, `SELECT name FROM admin_users WHERE lower(email) = lower($1)`, email).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperror.Internal("failed to check admin allow-list", err)
	}
	return name, true, nil
}

// GetByEmail returns the admin account for email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.AdminAccount, error) {
	const q = `SELECT a.id, a.email, a.password_hash, u.name, a.created_at, a.updated_at
		FROM admin_accounts a JOIN admin_users u ON u.email = a.email
		WHERE lower(a.email) = lower($1)`
	var a models.AdminAccount
	err := r.pool.QueryRow(ctx, q, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("admin account not found")
	}
	if err != nil {
		return nil, apperror.Internal("failed to load admin account", err)
	}
	return &a, nil
}

// Create inserts an admin account. The email must already be on the allow-list.
func (r *Repository) Create(ctx context.Context, email, passwordHash string) (*models.AdminAccount, error) {
	const q = `INSERT INTO admin_accounts (email, password_hash)
		SELECT email, $2 FROM admin_users WHERE lower(email) = lower($1)
		RETURNING id, email, password_hash, created_at, updated_at`
	var a models.AdminAccount
	err := r.pool.QueryRow(ctx, q, email, passwordHash).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.Forbidden(MsgNotAllowListed)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return nil, apperror.New(apperror.CodeAlreadyExists, MsgAccountExists, err)
	}
	if err != nil {
		return nil, apperror.Internal("failed to create admin account", err)
	}
	return &a, nil
}
