package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// UserRepository defines the interface for account persistence.
//
// Accounts are never updated or deleted in this design - there is no
// password-change path. Insert generates a fresh salt per account via
// HashPassword; salts are never reused.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	Insert(ctx context.Context, id, password string, role Role) (*User, error)
	ListAdmins(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int, error)
	EnsureSuperadmin(ctx context.Context, password string) (bool, error)
}

// SQLiteUserRepository implements UserRepository using SQLite.
// The reserved superadmin id is fixed at construction and can never be
// inserted through Insert, only through EnsureSuperadmin.
type SQLiteUserRepository struct {
	db         *sql.DB
	reservedID string
}

// NewUserRepository creates a new SQLite-backed user repository.
// reservedID is the configured superadmin account id.
func NewUserRepository(db *sql.DB, reservedID string) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db, reservedID: reservedID}
}

// Insert creates a new account with a freshly salted password hash.
// It rejects the reserved superadmin id with ErrReservedID and duplicate
// ids with ErrUserExists.
func (r *SQLiteUserRepository) Insert(ctx context.Context, id, password string, role Role) (*User, error) {
	if id == r.reservedID {
		return nil, ErrReservedID
	}
	return r.create(ctx, id, password, role)
}

// GetByID retrieves an account by its id.
func (r *SQLiteUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, password_hash, role, created_at FROM users WHERE id = ?", id)
	return scanUser(row)
}

// ListAdmins returns all admin accounts ordered by creation date.
// Password hashes are carried internally but never serialised.
func (r *SQLiteUserRepository) ListAdmins(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, password_hash, role, created_at FROM users WHERE role = ? ORDER BY created_at ASC",
		string(RoleAdmin))
	if err != nil {
		return nil, fmt.Errorf("listing admins: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating admins: %w", err)
	}

	if users == nil {
		users = []User{}
	}
	return users, nil
}

// Count returns the total number of accounts.
func (r *SQLiteUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

// EnsureSuperadmin creates the reserved superadmin account if it does not
// exist yet. It is idempotent and safe to call on every startup. Returns
// true if the account was created on this call.
func (r *SQLiteUserRepository) EnsureSuperadmin(ctx context.Context, password string) (bool, error) {
	// Login rejects empty passwords, so an account provisioned with one
	// could never be signed in to.
	if password == "" {
		return false, fmt.Errorf("superadmin password must not be empty")
	}

	_, err := r.GetByID(ctx, r.reservedID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return false, fmt.Errorf("checking superadmin: %w", err)
	}

	if _, err := r.create(ctx, r.reservedID, password, RoleSuperadmin); err != nil {
		// A concurrent startup may have won the race; treat as already done.
		if errors.Is(err, ErrUserExists) {
			return false, nil
		}
		return false, fmt.Errorf("creating superadmin: %w", err)
	}
	return true, nil
}

// create inserts an account row without the reserved-id check.
func (r *SQLiteUserRepository) create(ctx context.Context, id, password string, role Role) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO users (id, password_hash, role, created_at) VALUES (?, ?, ?, ?)",
		id, hash, string(role), now.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return &User{ID: id, PasswordHash: hash, Role: role, CreatedAt: now}, nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanUser scans a user from any scanner (Row or Rows).
func scanUser(s scanner) (*User, error) {
	var u User
	var role, createdAt string

	err := s.Scan(&u.ID, &u.PasswordHash, &role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	u.Role = Role(role)
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled

	return &u, nil
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
