// internal/reservations/service.go

// Package reservations orchestrates the booking core: availability
// validation, pricing, persistence, and the loyalty side effects, each
// create/modify running as one transaction.
package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/acereserve/acereserve/internal/authz"
	"github.com/acereserve/acereserve/internal/availability"
	appdb "github.com/acereserve/acereserve/internal/db"
	"github.com/acereserve/acereserve/internal/loyalty"
	"github.com/acereserve/acereserve/internal/models"
	"github.com/acereserve/acereserve/internal/pricing"
	"github.com/acereserve/acereserve/internal/store"
)

type Service struct {
	database          *appdb.DB
	rates             pricing.Rates
	program           loyalty.Program
	lightingStartHour int
}

func NewService(database *appdb.DB, rates pricing.Rates, program loyalty.Program, lightingStartHour int) *Service {
	return &Service{
		database:          database,
		rates:             rates,
		program:           program,
		lightingStartHour: lightingStartHour,
	}
}

// Create validates and books a reservation. The order of checks is fixed:
// court resolution, start-not-past, operating hours, court conflict, lighting,
// service (which cascades into coach and group checks). If anything fails the
// transaction rolls back and no points are awarded.
func (s *Service) Create(ctx context.Context, requester models.User, req models.ReservationRequest) (*models.Reservation, error) {
	if err := validateDuration(req.DurationMinutes); err != nil {
		return nil, err
	}

	start := req.StartTime.UTC()
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	var created *models.Reservation
	err := s.database.RunInTx(ctx, func(tx *appdb.DB) error {
		st := store.New(tx)
		validator := availability.NewValidator(st, st, s.lightingStartHour)
		engine := pricing.NewEngine(s.rates, s.program)

		court, err := st.GetCourtByNumber(ctx, req.CourtNumber)
		if err != nil {
			return err
		}
		if err := validator.ValidateStartNotPast(start); err != nil {
			return err
		}
		if err := validator.ValidateOperatingHours(*court, start, end); err != nil {
			return err
		}
		if err := validator.ValidateCourtConflict(ctx, req.CourtNumber, start, end, 0); err != nil {
			return err
		}
		if err := validator.ValidateLighting(*court, start, req.WantsLighting); err != nil {
			return err
		}
		if _, err := validator.ValidateService(ctx, requester.ID, req.ServiceID, start, end); err != nil {
			return err
		}

		account, tier, err := loadTier(ctx, st, requester.ID)
		if err != nil {
			return err
		}

		reservation := &models.Reservation{
			CourtNumber:     req.CourtNumber,
			UserID:          requester.ID,
			ServiceID:       req.ServiceID,
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: req.DurationMinutes,
			Status:          models.StatusConfirmed,
			Extras:          req.Extras,
			TotalPrice:      engine.CalculatePrice(*court, req.DurationMinutes, req.Extras, tier),
			Notes:           req.Notes,
		}
		if err := st.CreateReservation(ctx, reservation); err != nil {
			return err
		}

		// A missing loyalty account means nothing to award, not an error.
		if account != nil {
			s.program.ApplyDelta(account, engine.CalculateEarnedPoints(req.DurationMinutes))
			if err := st.SaveLoyalty(ctx, account); err != nil {
				return err
			}
		}

		created = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Int64("reservation_id", created.ID).
		Int64("court_number", created.CourtNumber).
		Int64("user_id", requester.ID).
		Time("start_time", created.StartTime).
		Str("total_price", created.TotalPrice.String()).
		Msg("Reservation created")
	return created, nil
}

// Cancel marks a reservation cancelled. Only the owner or an administrator
// may cancel; cancelling an already-cancelled reservation is a no-op.
func (s *Service) Cancel(ctx context.Context, requester models.User, reservationID int64) error {
	err := s.database.RunInTx(ctx, func(tx *appdb.DB) error {
		st := store.New(tx)

		reservation, err := st.GetReservationByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if !authz.CanMutate(&requester, reservation.UserID) {
			return models.ErrForbidden
		}

		reservation.Status = models.StatusCancelled
		return st.UpdateReservation(ctx, reservation)
	})
	if err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Int64("reservation_id", reservationID).
		Int64("requester_id", requester.ID).
		Msg("Reservation cancelled")
	return nil
}

// Modify overlays the non-nil patch fields onto the reservation, re-validates
// conflicts only when the court or the time window actually changed, and
// always recomputes the price from the effective court, duration, extras, and
// the requester's current tier.
func (s *Service) Modify(ctx context.Context, requester models.User, reservationID int64, patch models.ReservationPatch) (*models.Reservation, error) {
	if patch.DurationMinutes != nil {
		if err := validateDuration(*patch.DurationMinutes); err != nil {
			return nil, err
		}
	}

	var modified *models.Reservation
	err := s.database.RunInTx(ctx, func(tx *appdb.DB) error {
		st := store.New(tx)
		validator := availability.NewValidator(st, st, s.lightingStartHour)
		engine := pricing.NewEngine(s.rates, s.program)

		reservation, err := st.GetReservationByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if !authz.CanMutate(&requester, reservation.UserID) {
			return models.ErrForbidden
		}

		newCourtNumber := reservation.CourtNumber
		if patch.CourtNumber != nil {
			newCourtNumber = *patch.CourtNumber
		}
		newStart := reservation.StartTime
		if patch.StartTime != nil {
			newStart = patch.StartTime.UTC()
		}
		newDuration := reservation.DurationMinutes
		if patch.DurationMinutes != nil {
			newDuration = *patch.DurationMinutes
		}
		newEnd := newStart.Add(time.Duration(newDuration) * time.Minute)

		timeChanged := !newStart.Equal(reservation.StartTime) || newDuration != reservation.DurationMinutes
		courtChanged := newCourtNumber != reservation.CourtNumber

		if timeChanged || courtChanged {
			if timeChanged {
				if err := validator.ValidateStartNotPast(newStart); err != nil {
					return err
				}
			}
			if err := validator.ValidateCourtConflict(ctx, newCourtNumber, newStart, newEnd, reservation.ID); err != nil {
				return err
			}
		}

		reservation.CourtNumber = newCourtNumber
		reservation.StartTime = newStart
		reservation.EndTime = newEnd
		reservation.DurationMinutes = newDuration
		if patch.RentRacket != nil {
			reservation.Extras.RentRacket = *patch.RentRacket
		}
		if patch.RentBalls != nil {
			reservation.Extras.RentBalls = *patch.RentBalls
		}
		if patch.WantsLighting != nil {
			reservation.Extras.WantsLighting = *patch.WantsLighting
		}
		if patch.Notes != nil {
			reservation.Notes = *patch.Notes
		}

		court, err := st.GetCourtByNumber(ctx, newCourtNumber)
		if err != nil {
			return err
		}

		_, tier, err := loadTier(ctx, st, requester.ID)
		if err != nil {
			return err
		}
		reservation.TotalPrice = engine.CalculatePrice(*court, newDuration, reservation.Extras, tier)

		if err := st.UpdateReservation(ctx, reservation); err != nil {
			return err
		}
		modified = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Int64("reservation_id", modified.ID).
		Int64("requester_id", requester.ID).
		Str("total_price", modified.TotalPrice.String()).
		Msg("Reservation modified")
	return modified, nil
}

// ListForUser returns all reservations owned by the user.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]models.Reservation, error) {
	return store.New(s.database).ListReservationsByUser(ctx, userID)
}

// loadTier resolves the user's loyalty account and tier; a user with no
// account prices as a beginner.
func loadTier(ctx context.Context, st *store.Store, userID int64) (*models.LoyaltyAccount, models.LoyaltyTier, error) {
	account, err := st.GetLoyaltyByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrLoyaltyAccountNotFound) {
			return nil, models.TierBeginner, nil
		}
		return nil, models.TierBeginner, err
	}
	return account, account.Tier, nil
}

func validateDuration(durationMinutes int64) error {
	if durationMinutes < 30 || durationMinutes%30 != 0 {
		return models.NewInvalidInput(
			fmt.Sprintf("duration must be a multiple of 30 minutes, got %d", durationMinutes))
	}
	return nil
}
