// internal/store/loyalty.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/acereserve/acereserve/internal/models"
)

// GetLoyaltyByUserID loads a user's loyalty account.
func (s *Store) GetLoyaltyByUserID(ctx context.Context, userID int64) (*models.LoyaltyAccount, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT id, user_id, points, tier, updated_at
		 FROM loyalty_accounts WHERE user_id = ?`, userID)

	var account models.LoyaltyAccount
	err := row.Scan(&account.ID, &account.UserID, &account.Points, &account.Tier, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrLoyaltyAccountNotFound
		}
		return nil, fmt.Errorf("get loyalty for user %d: %w", userID, err)
	}
	return &account, nil
}

// CreateLoyaltyAccount opens a zero-balance beginner account for the user.
// Called once at user registration.
func (s *Store) CreateLoyaltyAccount(ctx context.Context, userID int64) (*models.LoyaltyAccount, error) {
	now := time.Now().UTC()
	result, err := s.q.ExecContext(ctx,
		`INSERT INTO loyalty_accounts (user_id, points, tier, updated_at) VALUES (?, 0, ?, ?)`,
		userID, models.TierBeginner, now)
	if err != nil {
		return nil, fmt.Errorf("create loyalty for user %d: %w", userID, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create loyalty for user %d: %w", userID, err)
	}
	return &models.LoyaltyAccount{ID: id, UserID: userID, Points: 0, Tier: models.TierBeginner, UpdatedAt: now}, nil
}

// SaveLoyalty persists an account's balance and tier after a point
// adjustment.
func (s *Store) SaveLoyalty(ctx context.Context, account *models.LoyaltyAccount) error {
	account.UpdatedAt = time.Now().UTC()
	_, err := s.q.ExecContext(ctx,
		`UPDATE loyalty_accounts SET points = ?, tier = ?, updated_at = ? WHERE id = ?`,
		account.Points, account.Tier, account.UpdatedAt, account.ID)
	if err != nil {
		return fmt.Errorf("save loyalty %d: %w", account.ID, err)
	}
	return nil
}
