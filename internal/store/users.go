package store

import (
	"context"
	"fmt"
	"strings"
)

// Role is a user's permission level.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleEstimator Role = "ESTIMATOR"
	RoleViewer    Role = "VIEWER"
)

func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(raw))); r {
	case RoleAdmin, RoleEstimator, RoleViewer:
		return r, nil
	}
	return "", fmt.Errorf("%q: %w", raw, ErrInvalidRole)
}

// CanEdit reports whether the role may change estimates and clients.
func (r Role) CanEdit() bool {
	return r == RoleAdmin || r == RoleEstimator
}

type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

func (s *Store) UserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, role
		FROM users
		WHERE email = ?
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role)
	if err != nil {
		return User{}, notFound(err, "user")
	}
	return u, nil
}

func (s *Store) UserExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user existence: %w", err)
	}
	return exists, nil
}

func (s *Store) CreateUser(ctx context.Context, email, passwordHash string, role Role) (int64, error) {
	if _, err := ParseRole(string(role)); err != nil {
		return 0, err
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, role)
		VALUES (?, ?, ?)
	`, email, passwordHash, string(role))
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return result.LastInsertId()
}
