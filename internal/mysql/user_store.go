package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"authstore/internal/domain"
	apperrors "authstore/internal/errors"
)

// mysqlDuplicateEntry is the MySQL error number for duplicate key violations.
const mysqlDuplicateEntry = 1062

// MySQL binds positionally with '?', and the update statement takes the id
// last. Behavior is identical to the other adapters regardless.
const (
	createTable = `CREATE TABLE IF NOT EXISTS users (
		id CHAR(36) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (id),
		UNIQUE KEY email_unique (email)
	)`
	insertUser    = `INSERT INTO users (id, email, password, is_admin) VALUES (?, ?, ?, ?)`
	updateUser    = `UPDATE users SET email = ?, password = ?, is_admin = ? WHERE id = ?`
	deleteByID    = `DELETE FROM users WHERE id = ?`
	deleteByEmail = `DELETE FROM users WHERE email = ?`
	selectByID    = `SELECT id, email, password, is_admin FROM users WHERE id = ?`
	selectByEmail = `SELECT id, email, password, is_admin FROM users WHERE email = ?`
)

var _ domain.UserStore = (*UserStore)(nil)

// UserStore is the MySQL adapter of the user store contract.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a UserStore over an existing connection pool.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return apperrors.Storage(fmt.Errorf("failed to create users table: %w", err))
	}
	return nil
}

func (s *UserStore) Create(ctx context.Context, id uuid.UUID, email, passwordHash string, isAdmin bool) error {
	_, err := s.db.ExecContext(ctx, insertUser, id.String(), email, passwordHash, isAdmin)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return apperrors.Conflict(apperrors.MsgEmailExists)
		}
		return apperrors.Storage(fmt.Errorf("failed to create user: %w", err))
	}
	return nil
}

func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	res, err := s.db.ExecContext(ctx, updateUser, user.Email, user.Password, user.IsAdmin, user.ID.String())
	if err != nil {
		return apperrors.Storage(fmt.Errorf("failed to update user: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.Storage(fmt.Errorf("failed to read affected rows: %w", err))
	}
	if affected == 0 {
		return apperrors.NotFound(apperrors.MsgUserNotFound)
	}
	return nil
}

func (s *UserStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	// Deleting a missing id is a silent no-op.
	if _, err := s.db.ExecContext(ctx, deleteByID, id.String()); err != nil {
		return apperrors.Storage(fmt.Errorf("failed to delete user by id: %w", err))
	}
	return nil
}

func (s *UserStore) DeleteByEmail(ctx context.Context, email string) error {
	if _, err := s.db.ExecContext(ctx, deleteByEmail, email); err != nil {
		return apperrors.Storage(fmt.Errorf("failed to delete user by email: %w", err))
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, selectByID, id.String()))
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, selectByEmail, email))
}

func (s *UserStore) scanUser(row *sql.Row) (*domain.User, error) {
	var (
		user  domain.User
		rawID string
	)
	err := row.Scan(&rawID, &user.Email, &user.Password, &user.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.MsgUserNotFound)
		}
		return nil, apperrors.Storage(fmt.Errorf("failed to scan user: %w", err))
	}

	user.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, apperrors.Conversion(fmt.Sprintf("stored id %q is not a valid uuid", rawID))
	}
	return &user, nil
}
