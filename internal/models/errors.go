// internal/models/errors.go
package models

// ErrorKind is the machine-readable classification carried by every domain
// error. The HTTP layer maps kinds to status codes; the core stays
// transport-agnostic.
type ErrorKind string

const (
	KindCourtNotFound           ErrorKind = "court_not_found"
	KindServiceNotFound         ErrorKind = "service_not_found"
	KindReservationNotFound     ErrorKind = "reservation_not_found"
	KindLoyaltyAccountNotFound  ErrorKind = "loyalty_account_not_found"
	KindStartTimeInvalid        ErrorKind = "start_time_invalid"
	KindClubNotOpen             ErrorKind = "club_not_open"
	KindClubClosed              ErrorKind = "club_closed"
	KindDoubleCourtBooking      ErrorKind = "double_court_booking"
	KindDoubleCoachBooking      ErrorKind = "double_coach_booking"
	KindLightingUnavailable     ErrorKind = "lighting_unavailable"
	KindLightingTimeRestricted  ErrorKind = "lighting_time_restricted"
	KindForbidden               ErrorKind = "forbidden"
	KindInvalidReservationInput ErrorKind = "invalid_reservation_input"
)

type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string { return e.Message }

// Is matches any DomainError of the same kind, so sentinel values below work
// with errors.Is even when a variant carries a different message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Kind == e.Kind
}

var (
	ErrCourtNotFound          = &DomainError{KindCourtNotFound, "court not found"}
	ErrServiceNotFound        = &DomainError{KindServiceNotFound, "there is no service with this id"}
	ErrReservationNotFound    = &DomainError{KindReservationNotFound, "there is no reservation with this id"}
	ErrLoyaltyAccountNotFound = &DomainError{KindLoyaltyAccountNotFound, "no loyalty account related to this user"}
	ErrStartTimeInvalid       = &DomainError{KindStartTimeInvalid, "invalid start time"}
	ErrClubNotOpen            = &DomainError{KindClubNotOpen, "club is not open yet at the requested start time"}
	ErrClubClosed             = &DomainError{KindClubClosed, "club is closed during the requested time"}
	ErrDoubleCourtBooking     = &DomainError{KindDoubleCourtBooking, "court is already booked for this time slot"}
	ErrDoubleCoachBooking     = &DomainError{KindDoubleCoachBooking, "coach is already booked for this time slot"}
	ErrLightingUnavailable    = &DomainError{KindLightingUnavailable, "lighting is not available for this court"}
	ErrLightingRestricted     = &DomainError{KindLightingTimeRestricted, "lighting is only available after 19:00"}
	ErrForbidden              = &DomainError{KindForbidden, "you do not have permission to perform this action"}
)

// NewClubClosed returns a club-closed error with a specific reason, e.g. the
// overnight-span case. errors.Is(err, ErrClubClosed) still matches.
func NewClubClosed(message string) *DomainError {
	return &DomainError{KindClubClosed, message}
}

// NewForbidden returns a forbidden error with a specific reason, e.g. group
// capacity reached.
func NewForbidden(message string) *DomainError {
	return &DomainError{KindForbidden, message}
}

// NewInvalidInput reports malformed reservation input such as a duration that
// is not a positive multiple of 30 minutes.
func NewInvalidInput(message string) *DomainError {
	return &DomainError{KindInvalidReservationInput, message}
}
