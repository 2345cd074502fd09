// internal/store/reservations.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/acereserve/acereserve/internal/models"
)

const reservationColumns = `id, court_number, user_id, service_id, start_time, end_time,
	duration_minutes, status, rent_racket, rent_balls, wants_lighting,
	total_price_cents, notes, created_at`

// CreateReservation inserts a reservation and populates its generated id and
// creation time.
func (s *Store) CreateReservation(ctx context.Context, res *models.Reservation) error {
	res.CreatedAt = time.Now().UTC()
	result, err := s.q.ExecContext(ctx,
		`INSERT INTO reservations (court_number, user_id, service_id, start_time, end_time,
		                           duration_minutes, status, rent_racket, rent_balls,
		                           wants_lighting, total_price_cents, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.CourtNumber, res.UserID, toNullInt64(res.ServiceID), res.StartTime, res.EndTime,
		res.DurationMinutes, res.Status, res.Extras.RentRacket, res.Extras.RentBalls,
		res.Extras.WantsLighting, int64(res.TotalPrice), res.Notes, res.CreatedAt)
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	res.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// GetReservationByID loads a single reservation.
func (s *Store) GetReservationByID(ctx context.Context, id int64) (*models.Reservation, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)

	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrReservationNotFound
		}
		return nil, fmt.Errorf("get reservation %d: %w", id, err)
	}
	return res, nil
}

// UpdateReservation persists every mutable reservation field.
func (s *Store) UpdateReservation(ctx context.Context, res *models.Reservation) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE reservations
		 SET court_number = ?, service_id = ?, start_time = ?, end_time = ?,
		     duration_minutes = ?, status = ?, rent_racket = ?, rent_balls = ?,
		     wants_lighting = ?, total_price_cents = ?, notes = ?
		 WHERE id = ?`,
		res.CourtNumber, toNullInt64(res.ServiceID), res.StartTime, res.EndTime,
		res.DurationMinutes, res.Status, res.Extras.RentRacket, res.Extras.RentBalls,
		res.Extras.WantsLighting, int64(res.TotalPrice), res.Notes, res.ID)
	if err != nil {
		return fmt.Errorf("update reservation %d: %w", res.ID, err)
	}
	return nil
}

// ListReservationsByUser returns a user's reservations, newest start first.
func (s *Store) ListReservationsByUser(ctx context.Context, userID int64) ([]models.Reservation, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations
		 WHERE user_id = ? ORDER BY start_time DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list reservations for user %d: %w", userID, err)
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("list reservations for user %d: %w", userID, err)
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

// CompletePastReservations marks confirmed reservations whose end time has
// passed as completed and reports how many rows changed.
func (s *Store) CompletePastReservations(ctx context.Context, now time.Time) (int64, error) {
	result, err := s.q.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE status = ? AND end_time <= ?`,
		models.StatusCompleted, models.StatusConfirmed, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("complete past reservations: %w", err)
	}
	return result.RowsAffected()
}

// HasCourtConflict reports whether any non-cancelled reservation on the court
// overlaps [start, end). Touching endpoints do not conflict. A non-zero
// excludeReservationID is skipped, for modification re-checks.
func (s *Store) HasCourtConflict(ctx context.Context, courtNumber int64, start, end time.Time, excludeReservationID int64) (bool, error) {
	var exists bool
	err := s.q.QueryRowContext(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM reservations
		     WHERE court_number = ?
		       AND status != ?
		       AND start_time < ?
		       AND end_time > ?
		       AND id != ?
		 )`,
		courtNumber, models.StatusCancelled, end, start, excludeReservationID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("court conflict query: %w", err)
	}
	return exists, nil
}

// HasCoachConflict reports whether the coach already has a non-cancelled
// reservation overlapping [start, end), through any of their services.
func (s *Store) HasCoachConflict(ctx context.Context, coachID int64, start, end time.Time) (bool, error) {
	var exists bool
	err := s.q.QueryRowContext(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM reservations r
		     JOIN services sv ON sv.id = r.service_id
		     WHERE sv.coach_id = ?
		       AND r.status != ?
		       AND r.start_time < ?
		       AND r.end_time > ?
		 )`,
		coachID, models.StatusCancelled, end, start).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("coach conflict query: %w", err)
	}
	return exists, nil
}

// CountGroupParticipants counts non-cancelled reservations for a group
// service overlapping [start, end).
func (s *Store) CountGroupParticipants(ctx context.Context, serviceID int64, start, end time.Time) (int64, error) {
	var count int64
	err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations
		 WHERE service_id = ?
		   AND status != ?
		   AND start_time < ?
		   AND end_time > ?`,
		serviceID, models.StatusCancelled, end, start).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("group participant query: %w", err)
	}
	return count, nil
}

// UserHasGroupBooking reports whether the user already participates in the
// group service during [start, end).
func (s *Store) UserHasGroupBooking(ctx context.Context, userID, serviceID int64, start, end time.Time) (bool, error) {
	var exists bool
	err := s.q.QueryRowContext(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM reservations
		     WHERE user_id = ?
		       AND service_id = ?
		       AND status != ?
		       AND start_time < ?
		       AND end_time > ?
		 )`,
		userID, serviceID, models.StatusCancelled, end, start).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("group duplicate query: %w", err)
	}
	return exists, nil
}

func scanReservation(row rowScanner) (*models.Reservation, error) {
	var res models.Reservation
	var serviceID sql.NullInt64
	var priceCents int64
	err := row.Scan(&res.ID, &res.CourtNumber, &res.UserID, &serviceID,
		&res.StartTime, &res.EndTime, &res.DurationMinutes, &res.Status,
		&res.Extras.RentRacket, &res.Extras.RentBalls, &res.Extras.WantsLighting,
		&priceCents, &res.Notes, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	res.ServiceID = fromNullInt64(serviceID)
	res.TotalPrice = models.Cents(priceCents)
	return &res, nil
}
