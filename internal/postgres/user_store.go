package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"authstore/internal/domain"
	apperrors "authstore/internal/errors"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique constraint errors.
const pgUniqueViolation = "23505"

const (
	createTable = `CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	)`
	insertUser    = `INSERT INTO users (id, email, password, is_admin) VALUES ($1, $2, $3, $4)`
	updateUser    = `UPDATE users SET email = $2, password = $3, is_admin = $4 WHERE id = $1`
	deleteByID    = `DELETE FROM users WHERE id = $1`
	deleteByEmail = `DELETE FROM users WHERE email = $1`
	selectByID    = `SELECT id, email, password, is_admin FROM users WHERE id = $1`
	selectByEmail = `SELECT id, email, password, is_admin FROM users WHERE email = $1`
)

var _ domain.UserStore = (*UserStore)(nil)

// UserStore is the PostgreSQL adapter of the user store contract.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore creates a UserStore over an existing pool.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) Init(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTable); err != nil {
		return apperrors.Storage(fmt.Errorf("failed to create users table: %w", err))
	}
	return nil
}

func (s *UserStore) Create(ctx context.Context, id uuid.UUID, email, passwordHash string, isAdmin bool) error {
	_, err := s.pool.Exec(ctx, insertUser, id, email, passwordHash, isAdmin)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperrors.Conflict(apperrors.MsgEmailExists)
		}
		return apperrors.Storage(fmt.Errorf("failed to create user: %w", err))
	}
	return nil
}

func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	tag, err := s.pool.Exec(ctx, updateUser, user.ID, user.Email, user.Password, user.IsAdmin)
	if err != nil {
		return apperrors.Storage(fmt.Errorf("failed to update user: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(apperrors.MsgUserNotFound)
	}
	return nil
}

func (s *UserStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	// Deleting a missing id is a silent no-op.
	if _, err := s.pool.Exec(ctx, deleteByID, id); err != nil {
		return apperrors.Storage(fmt.Errorf("failed to delete user by id: %w", err))
	}
	return nil
}

func (s *UserStore) DeleteByEmail(ctx context.Context, email string) error {
	if _, err := s.pool.Exec(ctx, deleteByEmail, email); err != nil {
		return apperrors.Storage(fmt.Errorf("failed to delete user by email: %w", err))
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx, selectByID, id))
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx, selectByEmail, email))
}

func (s *UserStore) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.MsgUserNotFound)
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to scan user: %w", err))
	}
	return &user, nil
}
