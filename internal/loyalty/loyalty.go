// internal/loyalty/loyalty.go

// Package loyalty implements the point-balance state machine behind member
// tiers. The tier is always a pure function of the balance; nothing in this
// package performs I/O.
package loyalty

import "github.com/acereserve/acereserve/internal/models"

// Thresholds are the ascending point floors for each tier above beginner.
type Thresholds struct {
	Silver   int64 `yaml:"silver"`
	Gold     int64 `yaml:"gold"`
	Platinum int64 `yaml:"platinum"`
}

// Program carries the loyalty parameters. Injected rather than package-level
// so tests can vary thresholds without global state.
type Program struct {
	Thresholds    Thresholds `yaml:"thresholds"`
	PointsPerHour int64      `yaml:"points_per_hour"`
}

func DefaultProgram() Program {
	return Program{
		Thresholds:    Thresholds{Silver: 50, Gold: 150, Platinum: 300},
		PointsPerHour: 10,
	}
}

// TierFor derives the tier for a point balance.
func (p Program) TierFor(points int64) models.LoyaltyTier {
	switch {
	case points >= p.Thresholds.Platinum:
		return models.TierPlatinum
	case points >= p.Thresholds.Gold:
		return models.TierGold
	case points >= p.Thresholds.Silver:
		return models.TierSilver
	default:
		return models.TierBeginner
	}
}

// ApplyDelta adds delta to the account balance (positive earns, negative
// spends), clamps the balance at zero, and re-derives the tier. The account is
// the only thing mutated.
func (p Program) ApplyDelta(account *models.LoyaltyAccount, delta int64) {
	account.Points += delta
	if account.Points < 0 {
		account.Points = 0
	}
	account.Tier = p.TierFor(account.Points)
}

// EarnForDuration returns floor(durationMinutes/60 * PointsPerHour).
func (p Program) EarnForDuration(durationMinutes int64) int64 {
	if durationMinutes <= 0 {
		return 0
	}
	return durationMinutes * p.PointsPerHour / 60
}
