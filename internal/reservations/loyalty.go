// internal/reservations/loyalty.go
package reservations

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	appdb "github.com/acereserve/acereserve/internal/db"
	"github.com/acereserve/acereserve/internal/models"
	"github.com/acereserve/acereserve/internal/store"
)

// AdjustLoyalty applies a signed point delta to a user's loyalty account.
// Unlike the award-on-booking side effect, a missing account here is an
// error: the adjustment is the whole point of the call.
func (s *Service) AdjustLoyalty(ctx context.Context, userID, delta int64) (*models.LoyaltyAccount, error) {
	var account *models.LoyaltyAccount
	err := s.database.RunInTx(ctx, func(tx *appdb.DB) error {
		st := store.New(tx)

		found, err := st.GetLoyaltyByUserID(ctx, userID)
		if err != nil {
			return err
		}
		s.program.ApplyDelta(found, delta)
		if err := st.SaveLoyalty(ctx, found); err != nil {
			return err
		}
		account = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Int64("user_id", userID).
		Int64("delta", delta).
		Int64("points", account.Points).
		Str("tier", string(account.Tier)).
		Msg("Loyalty points adjusted")
	return account, nil
}

// GetLoyalty reports a user's point balance and tier. A user without an
// account reads as zero points, beginner tier.
func (s *Service) GetLoyalty(ctx context.Context, userID int64) (*models.LoyaltyAccount, error) {
	account, err := store.New(s.database).GetLoyaltyByUserID(ctx, userID)
	if err == nil {
		return account, nil
	}
	if errors.Is(err, models.ErrLoyaltyAccountNotFound) {
		return &models.LoyaltyAccount{UserID: userID, Points: 0, Tier: models.TierBeginner}, nil
	}
	return nil, err
}
