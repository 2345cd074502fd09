// internal/availability/validator.go

// Package availability holds the stateless booking rules: time-window sanity,
// operating hours, double-booking conflicts, lighting eligibility, and service
// resolution. Every check is a pure query; nothing here writes.
package availability

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/acereserve/acereserve/internal/models"
)

const (
	defaultOpenTime  = "08:00"
	defaultCloseTime = "22:00"
)

// ReservationSource answers conflict queries against persisted reservations.
// Implementations must apply half-open overlap semantics and skip cancelled
// reservations.
type ReservationSource interface {
	HasCourtConflict(ctx context.Context, courtNumber int64, start, end time.Time, excludeReservationID int64) (bool, error)
	HasCoachConflict(ctx context.Context, coachID int64, start, end time.Time) (bool, error)
	CountGroupParticipants(ctx context.Context, serviceID int64, start, end time.Time) (int64, error)
	UserHasGroupBooking(ctx context.Context, userID, serviceID int64, start, end time.Time) (bool, error)
}

// ServiceSource resolves service add-ons by id.
type ServiceSource interface {
	GetServiceByID(ctx context.Context, id int64) (*models.Service, error)
}

type Validator struct {
	reservations      ReservationSource
	services          ServiceSource
	lightingStartHour int
	now               func() time.Time
}

func NewValidator(reservations ReservationSource, services ServiceSource, lightingStartHour int) *Validator {
	return &Validator{
		reservations:      reservations,
		services:          services,
		lightingStartHour: lightingStartHour,
		now:               time.Now,
	}
}

// ValidateStartNotPast rejects start times strictly before the current
// instant.
func (v *Validator) ValidateStartNotPast(start time.Time) error {
	if start.Before(v.now()) {
		return models.ErrStartTimeInvalid
	}
	return nil
}

// ValidateOperatingHours checks the window against the court's open and close
// wall-clock times. An end landing exactly at midnight counts as end of day.
// Reservations may not span calendar dates.
func (v *Validator) ValidateOperatingHours(court models.Court, start, end time.Time) error {
	openMinute, err := parseClock(court.OpenTime, defaultOpenTime)
	if err != nil {
		return fmt.Errorf("court %d open time: %w", court.Number, err)
	}
	closeMinute, err := parseClock(court.CloseTime, defaultCloseTime)
	if err != nil {
		return fmt.Errorf("court %d close time: %w", court.Number, err)
	}

	start = start.UTC()
	end = end.UTC()
	endsAtMidnight := end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 && end.Nanosecond() == 0

	// A midnight end belongs to the day it closes out.
	endOwningDay := end
	if endsAtMidnight {
		endOwningDay = end.Add(-time.Minute)
	}
	sy, sm, sd := start.Date()
	ey, em, ed := endOwningDay.Date()
	if sy != ey || sm != em || sd != ed {
		return models.NewClubClosed("no overnight reservations")
	}

	startMinute := start.Hour()*60 + start.Minute()
	if startMinute < openMinute {
		return models.ErrClubNotOpen
	}
	if startMinute >= closeMinute {
		return models.ErrClubClosed
	}
	if !endsAtMidnight {
		endMinute := end.Hour()*60 + end.Minute()
		if endMinute > closeMinute {
			return models.ErrClubClosed
		}
	}
	return nil
}

// ValidateCourtConflict fails if any non-cancelled reservation on the court
// overlaps the window. Touching endpoints do not overlap. Pass a non-zero
// excludeReservationID when re-validating a modification.
func (v *Validator) ValidateCourtConflict(ctx context.Context, courtNumber int64, start, end time.Time, excludeReservationID int64) error {
	conflict, err := v.reservations.HasCourtConflict(ctx, courtNumber, start, end, excludeReservationID)
	if err != nil {
		return fmt.Errorf("court conflict check: %w", err)
	}
	if conflict {
		return models.ErrDoubleCourtBooking
	}
	return nil
}

// ValidateCoachConflict fails if the coach already has a non-cancelled
// reservation overlapping the window. A nil coach id is a no-op.
func (v *Validator) ValidateCoachConflict(ctx context.Context, coachID *int64, start, end time.Time) error {
	if coachID == nil {
		return nil
	}
	conflict, err := v.reservations.HasCoachConflict(ctx, *coachID, start, end)
	if err != nil {
		return fmt.Errorf("coach conflict check: %w", err)
	}
	if conflict {
		return models.ErrDoubleCoachBooking
	}
	return nil
}

// ValidateLighting is a no-op unless lighting is requested. The court must
// have lighting, and the start must be at or after the lighting start hour.
func (v *Validator) ValidateLighting(court models.Court, start time.Time, wantsLighting bool) error {
	if !wantsLighting {
		return nil
	}
	if !court.HasLighting {
		return models.ErrLightingUnavailable
	}
	if start.UTC().Hour() < v.lightingStartHour {
		return models.ErrLightingRestricted
	}
	return nil
}

// ValidateService resolves the requested service, checks the coach's calendar
// when the service requires one, and enforces group capacity for group
// services. A nil service id returns (nil, nil).
func (v *Validator) ValidateService(ctx context.Context, requesterID int64, serviceID *int64, start, end time.Time) (*models.Service, error) {
	if serviceID == nil {
		return nil, nil
	}
	service, err := v.services.GetServiceByID(ctx, *serviceID)
	if err != nil {
		return nil, err
	}

	if service.RequiresCoach {
		if err := v.ValidateCoachConflict(ctx, service.CoachID, start, end); err != nil {
			return nil, err
		}
	}

	if service.Category == models.CategoryGroup {
		if err := v.validateGroupCapacity(ctx, requesterID, service, start, end); err != nil {
			return nil, err
		}
	}
	return service, nil
}

func (v *Validator) validateGroupCapacity(ctx context.Context, requesterID int64, service *models.Service, start, end time.Time) error {
	duplicate, err := v.reservations.UserHasGroupBooking(ctx, requesterID, service.ID, start, end)
	if err != nil {
		return fmt.Errorf("group duplicate check: %w", err)
	}
	if duplicate {
		return models.NewForbidden("you already have a booking for this group session")
	}

	if service.GroupCapacity <= 0 {
		return nil
	}
	participants, err := v.reservations.CountGroupParticipants(ctx, service.ID, start, end)
	if err != nil {
		return fmt.Errorf("group capacity check: %w", err)
	}
	if participants >= service.GroupCapacity {
		return models.NewForbidden("this group session is fully booked")
	}
	return nil
}

// parseClock converts an "HH:MM" wall-clock string into minutes since
// midnight, substituting fallback when the value is empty.
func parseClock(value, fallback string) (int, error) {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock value %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("malformed clock value %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("malformed clock value %q", value)
	}
	return hour*60 + minute, nil
}
