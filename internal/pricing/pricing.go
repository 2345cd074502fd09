// internal/pricing/pricing.go

// Package pricing computes reservation totals. All arithmetic is exact
// rational math rounded half-up to cents at the very end, so the engine is
// deterministic and side-effect free.
package pricing

import (
	"math/big"

	"github.com/acereserve/acereserve/internal/loyalty"
	"github.com/acereserve/acereserve/internal/models"
)

// Rates is the injected price catalogue: extras surcharges and the per-tier
// discount table in basis points (500 = 5%).
type Rates struct {
	RacketCents   models.Cents `yaml:"racket_cents"`
	BallsCents    models.Cents `yaml:"balls_cents"`
	LightingCents models.Cents `yaml:"lighting_cents"`

	DiscountBasisPoints map[models.LoyaltyTier]int64 `yaml:"discount_basis_points"`
}

func DefaultRates() Rates {
	return Rates{
		RacketCents:   500,
		BallsCents:    300,
		LightingCents: 1000,
		DiscountBasisPoints: map[models.LoyaltyTier]int64{
			models.TierBeginner: 0,
			models.TierSilver:   500,
			models.TierGold:     1000,
			models.TierPlatinum: 1500,
		},
	}
}

type Engine struct {
	rates   Rates
	program loyalty.Program
}

func NewEngine(rates Rates, program loyalty.Program) *Engine {
	return &Engine{rates: rates, program: program}
}

// DiscountForTier returns the discount for a tier in basis points. Unknown
// tiers get no discount.
func (e *Engine) DiscountForTier(tier models.LoyaltyTier) int64 {
	return e.rates.DiscountBasisPoints[tier]
}

// CalculatePrice computes the reservation total: court rate times hours, plus
// extras, minus the tier discount, rounded half-up to cents. Discounts never
// exceed 100%, so the result is never negative for non-negative inputs.
func (e *Engine) CalculatePrice(court models.Court, durationMinutes int64, extras models.Extras, tier models.LoyaltyTier) models.Cents {
	// base = price_per_hour * (minutes / 60), in currency units
	subtotal := big.NewRat(int64(court.PricePerHour)*durationMinutes, 60*100)

	extrasCents := int64(0)
	if extras.RentRacket {
		extrasCents += int64(e.rates.RacketCents)
	}
	if extras.RentBalls {
		extrasCents += int64(e.rates.BallsCents)
	}
	if extras.WantsLighting {
		extrasCents += int64(e.rates.LightingCents)
	}
	subtotal.Add(subtotal, big.NewRat(extrasCents, 100))

	bp := e.DiscountForTier(tier)
	final := new(big.Rat).Mul(subtotal, big.NewRat(10000-bp, 10000))

	return models.RoundCentsHalfUp(final)
}

// CalculateEarnedPoints delegates to the loyalty program's earning rule.
func (e *Engine) CalculateEarnedPoints(durationMinutes int64) int64 {
	return e.program.EarnForDuration(durationMinutes)
}
