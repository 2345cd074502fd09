// internal/store/courts.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acereserve/acereserve/internal/models"
)

const courtColumns = `id, number, surface, open_time, close_time, has_lighting, price_per_hour_cents, available`

// GetCourtByNumber resolves a court by its club-wide number.
func (s *Store) GetCourtByNumber(ctx context.Context, number int64) (*models.Court, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+courtColumns+` FROM courts WHERE number = ?`, number)

	court, err := scanCourt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCourtNotFound
		}
		return nil, fmt.Errorf("get court %d: %w", number, err)
	}
	return court, nil
}

// ListCourts returns all courts ordered by number.
func (s *Store) ListCourts(ctx context.Context) ([]models.Court, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+courtColumns+` FROM courts ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	defer rows.Close()

	var courts []models.Court
	for rows.Next() {
		court, err := scanCourt(rows)
		if err != nil {
			return nil, fmt.Errorf("list courts: %w", err)
		}
		courts = append(courts, *court)
	}
	return courts, rows.Err()
}

// CreateCourt inserts a court and populates its generated id. Court writes
// belong to the external admin surface; this exists for fixtures and seeding.
func (s *Store) CreateCourt(ctx context.Context, court *models.Court) error {
	result, err := s.q.ExecContext(ctx,
		`INSERT INTO courts (number, surface, open_time, close_time, has_lighting, price_per_hour_cents, available)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		court.Number, court.Surface, court.OpenTime, court.CloseTime,
		court.HasLighting, int64(court.PricePerHour), court.Available)
	if err != nil {
		return fmt.Errorf("create court %d: %w", court.Number, err)
	}
	court.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create court %d: %w", court.Number, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourt(row rowScanner) (*models.Court, error) {
	var court models.Court
	var priceCents int64
	err := row.Scan(&court.ID, &court.Number, &court.Surface, &court.OpenTime,
		&court.CloseTime, &court.HasLighting, &priceCents, &court.Available)
	if err != nil {
		return nil, err
	}
	court.PricePerHour = models.Cents(priceCents)
	return &court, nil
}
