// internal/store/services.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acereserve/acereserve/internal/models"
)

// GetServiceByID resolves a coaching service by id. Satisfies
// availability.ServiceSource.
func (s *Store) GetServiceByID(ctx context.Context, id int64) (*models.Service, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT id, name, description, price_cents, duration_minutes, available,
		        category, requires_coach, coach_id, group_capacity
		 FROM services WHERE id = ?`, id)

	var service models.Service
	var priceCents int64
	var coachID sql.NullInt64
	err := row.Scan(&service.ID, &service.Name, &service.Description, &priceCents,
		&service.DurationMinutes, &service.Available, &service.Category,
		&service.RequiresCoach, &coachID, &service.GroupCapacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service %d: %w", id, err)
	}
	service.Price = models.Cents(priceCents)
	service.CoachID = fromNullInt64(coachID)
	return &service, nil
}

// CreateService inserts a service and populates its generated id. Service
// management lives in the external coach/admin surface; this exists for
// fixtures and seeding.
func (s *Store) CreateService(ctx context.Context, service *models.Service) error {
	result, err := s.q.ExecContext(ctx,
		`INSERT INTO services (name, description, price_cents, duration_minutes, available,
		                       category, requires_coach, coach_id, group_capacity)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		service.Name, service.Description, int64(service.Price), service.DurationMinutes,
		service.Available, service.Category, service.RequiresCoach,
		toNullInt64(service.CoachID), service.GroupCapacity)
	if err != nil {
		return fmt.Errorf("create service %q: %w", service.Name, err)
	}
	service.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create service %q: %w", service.Name, err)
	}
	return nil
}
