// internal/store/users.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acereserve/acereserve/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// GetUserByID loads the identity and role of a user. User management itself is
// owned by the external account surface.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT id, email, full_name, role FROM users WHERE id = ?`, id)

	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.FullName, &user.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

// CreateUser inserts a user and populates its generated id.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	result, err := s.q.ExecContext(ctx,
		`INSERT INTO users (email, full_name, role) VALUES (?, ?, ?)`,
		user.Email, user.FullName, user.Role)
	if err != nil {
		return fmt.Errorf("create user %q: %w", user.Email, err)
	}
	user.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create user %q: %w", user.Email, err)
	}
	return nil
}
