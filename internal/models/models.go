// internal/models/models.go
package models

import "time"

type Surface string

const (
	SurfaceHard   Surface = "hard"
	SurfaceClay   Surface = "clay"
	SurfaceGrass  Surface = "grass"
	SurfaceIndoor Surface = "indoor"
)

type ServiceCategory string

const (
	CategoryIndividual ServiceCategory = "individual"
	CategoryGroup      ServiceCategory = "group"
)

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "Pending"
	StatusConfirmed ReservationStatus = "Confirmed"
	StatusCancelled ReservationStatus = "Cancelled"
	StatusCompleted ReservationStatus = "Completed"
)

type LoyaltyTier string

const (
	TierBeginner LoyaltyTier = "beginner"
	TierSilver   LoyaltyTier = "silver"
	TierGold     LoyaltyTier = "gold"
	TierPlatinum LoyaltyTier = "platinum"
)

type Role string

const (
	RoleMember Role = "member"
	RoleCoach  Role = "coach"
	RoleAdmin  Role = "admin"
)

// Court is a shared read-mostly resource; court management is handled by an
// external admin surface and courts are treated as immutable during
// reservation validation.
type Court struct {
	ID           int64   `json:"id"`
	Number       int64   `json:"number"`
	Surface      Surface `json:"surface"`
	OpenTime     string  `json:"open_time"`  // "15:04" wall clock
	CloseTime    string  `json:"close_time"` // "15:04" wall clock
	HasLighting  bool    `json:"has_lighting"`
	PricePerHour Cents   `json:"price_per_hour"`
	Available    bool    `json:"available"`
}

// Service is an optional reservation add-on, e.g. coaching.
type Service struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           Cents           `json:"price"`
	DurationMinutes int64           `json:"duration_minutes"`
	Available       bool            `json:"available"`
	Category        ServiceCategory `json:"category"`
	RequiresCoach   bool            `json:"requires_coach"`
	CoachID         *int64          `json:"coach_id,omitempty"`
	// GroupCapacity bounds concurrent participants for group services.
	// Zero means no ceiling.
	GroupCapacity int64 `json:"group_capacity,omitempty"`
}

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// LoyaltyAccount is created with zero points at user registration and mutated
// only through the loyalty package; Tier never diverges from Points.
type LoyaltyAccount struct {
	ID        int64       `json:"-"`
	UserID    int64       `json:"user_id"`
	Points    int64       `json:"points"`
	Tier      LoyaltyTier `json:"tier"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Extras groups the optional add-on flags consumed identically by pricing and
// validation.
type Extras struct {
	RentRacket    bool `json:"rent_racket"`
	RentBalls     bool `json:"rent_balls"`
	WantsLighting bool `json:"wants_lighting"`
}

type Reservation struct {
	ID              int64             `json:"id"`
	CourtNumber     int64             `json:"court_number"`
	UserID          int64             `json:"user_id"`
	ServiceID       *int64            `json:"service_id,omitempty"`
	StartTime       time.Time         `json:"start_time"`
	EndTime         time.Time         `json:"end_time"`
	DurationMinutes int64             `json:"duration_minutes"`
	Status          ReservationStatus `json:"status"`
	Extras          Extras            `json:"extras"`
	TotalPrice      Cents             `json:"total_price"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// ReservationRequest is the input to reservation creation. TotalPrice is never
// accepted from callers; it is always recomputed.
type ReservationRequest struct {
	CourtNumber     int64     `json:"court_number"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int64     `json:"duration_minutes"`
	ServiceID       *int64    `json:"service_id,omitempty"`
	Extras
	Notes string `json:"notes,omitempty"`
}

// ReservationPatch overlays non-nil fields onto an existing reservation.
type ReservationPatch struct {
	CourtNumber     *int64     `json:"court_number,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	DurationMinutes *int64     `json:"duration_minutes,omitempty"`
	RentRacket      *bool      `json:"rent_racket,omitempty"`
	RentBalls       *bool      `json:"rent_balls,omitempty"`
	WantsLighting   *bool      `json:"wants_lighting,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}
