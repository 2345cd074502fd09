package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	appdb "github.com/acereserve/acereserve/internal/db"
	"github.com/acereserve/acereserve/internal/loyalty"
	"github.com/acereserve/acereserve/internal/models"
	"github.com/acereserve/acereserve/internal/pricing"
	"github.com/acereserve/acereserve/internal/store"
	"github.com/acereserve/acereserve/internal/testutil"
)

type fixture struct {
	service  *Service
	store    *store.Store
	database *appdb.DB
	member   models.User
	admin    models.User
	court    models.Court
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	st := store.New(database)
	ctx := context.Background()

	member := models.User{Email: "member@example.com", FullName: "Member One", Role: models.RoleMember}
	if err := st.CreateUser(ctx, &member); err != nil {
		t.Fatalf("create member: %v", err)
	}
	if _, err := st.CreateLoyaltyAccount(ctx, member.ID); err != nil {
		t.Fatalf("create loyalty: %v", err)
	}

	admin := models.User{Email: "admin@example.com", FullName: "Admin", Role: models.RoleAdmin}
	if err := st.CreateUser(ctx, &admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	court := models.Court{
		Number:       1,
		Surface:      models.SurfaceHard,
		OpenTime:     "08:00",
		CloseTime:    "22:00",
		HasLighting:  true,
		PricePerHour: 2500,
		Available:    true,
	}
	if err := st.CreateCourt(ctx, &court); err != nil {
		t.Fatalf("create court: %v", err)
	}

	return &fixture{
		service:  NewService(database, pricing.DefaultRates(), loyalty.DefaultProgram(), 19),
		store:    st,
		database: database,
		member:   member,
		admin:    admin,
		court:    court,
	}
}

func tomorrowAt(hour, minute int) time.Time {
	return time.Now().UTC().AddDate(0, 0, 1).Truncate(24 * time.Hour).
		Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestCreateReservationConfirmedWithPriceAndPoints(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber:     1,
		StartTime:       tomorrowAt(10, 0),
		DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != models.StatusConfirmed {
		t.Fatalf("status = %s, want Confirmed", created.Status)
	}
	if created.TotalPrice != 2500 {
		t.Fatalf("price = %s, want 25.00", created.TotalPrice)
	}
	if !created.EndTime.Equal(created.StartTime.Add(time.Hour)) {
		t.Fatalf("end time = %v, want start+1h", created.EndTime)
	}

	account, err := f.store.GetLoyaltyByUserID(ctx, f.member.ID)
	if err != nil {
		t.Fatalf("get loyalty: %v", err)
	}
	if account.Points != 10 {
		t.Fatalf("points after booking = %d, want 10", account.Points)
	}
}

func TestCreateMissingCourt(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), f.member, models.ReservationRequest{
		CourtNumber:     42,
		StartTime:       tomorrowAt(10, 0),
		DurationMinutes: 60,
	})
	if !errors.Is(err, models.ErrCourtNotFound) {
		t.Fatalf("got %v, want court not found", err)
	}
}

func TestCreateStartInPastAlwaysRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), f.member, models.ReservationRequest{
		CourtNumber:     1,
		StartTime:       time.Now().UTC().Add(-time.Hour),
		DurationMinutes: 60,
	})
	if !errors.Is(err, models.ErrStartTimeInvalid) {
		t.Fatalf("got %v, want start time invalid", err)
	}
}

func TestCreateRejectsBadDuration(t *testing.T) {
	f := newFixture(t)

	for _, duration := range []int64{0, 15, 45, -30} {
		_, err := f.service.Create(context.Background(), f.member, models.ReservationRequest{
			CourtNumber:     1,
			StartTime:       tomorrowAt(10, 0),
			DurationMinutes: duration,
		})
		var domainErr *models.DomainError
		if !errors.As(err, &domainErr) || domainErr.Kind != models.KindInvalidReservationInput {
			t.Fatalf("duration %d: got %v, want invalid input", duration, err)
		}
	}
}

func TestCreateTouchingWindowsDoNotConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(9, 0), DurationMinutes: 60,
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// 10:00-11:00 touches 09:00-10:00 at the endpoint only
	if _, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(10, 0), DurationMinutes: 60,
	}); err != nil {
		t.Fatalf("touching booking should be allowed: %v", err)
	}

	// 09:30-10:30 overlaps both
	_, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(9, 30), DurationMinutes: 60,
	})
	if !errors.Is(err, models.ErrDoubleCourtBooking) {
		t.Fatalf("got %v, want double court booking", err)
	}
}

func TestCreateCancelledReservationFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(9, 0), DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if err := f.service.Cancel(ctx, f.member, first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(9, 0), DurationMinutes: 60,
	}); err != nil {
		t.Fatalf("slot should be free after cancellation: %v", err)
	}
}

func TestCreateOutsideOperatingHours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(7, 0), DurationMinutes: 60,
	})
	if !errors.Is(err, models.ErrClubNotOpen) {
		t.Fatalf("before open: got %v, want club not open", err)
	}

	_, err = f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(21, 30), DurationMinutes: 60,
	})
	if !errors.Is(err, models.ErrClubClosed) {
		t.Fatalf("past close: got %v, want club closed", err)
	}
}

func TestCreateLightingRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	darkCourt := models.Court{
		Number: 2, Surface: models.SurfaceClay, OpenTime: "08:00", CloseTime: "22:00",
		HasLighting: false, PricePerHour: 2000, Available: true,
	}
	if err := f.store.CreateCourt(ctx, &darkCourt); err != nil {
		t.Fatalf("create court: %v", err)
	}

	// no lighting capability fails even at 20:00
	_, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 2, StartTime: tomorrowAt(20, 0), DurationMinutes: 60,
		Extras: models.Extras{WantsLighting: true},
	})
	if !errors.Is(err, models.ErrLightingUnavailable) {
		t.Fatalf("got %v, want lighting unavailable", err)
	}

	// lit court before 19:00 fails
	_, err = f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(18, 0), DurationMinutes: 60,
		Extras: models.Extras{WantsLighting: true},
	})
	if !errors.Is(err, models.ErrLightingRestricted) {
		t.Fatalf("got %v, want lighting restricted", err)
	}

	// lit court at 20:00 succeeds and charges the lighting extra
	created, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(20, 0), DurationMinutes: 60,
		Extras: models.Extras{WantsLighting: true},
	})
	if err != nil {
		t.Fatalf("evening lighting booking: %v", err)
	}
	if created.TotalPrice != 3500 {
		t.Fatalf("price = %s, want 35.00", created.TotalPrice)
	}
}

func TestCreateCoachConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	coach := models.User{Email: "coach@example.com", FullName: "Coach", Role: models.RoleCoach}
	if err := f.store.CreateUser(ctx, &coach); err != nil {
		t.Fatalf("create coach: %v", err)
	}
	lesson := models.Service{
		Name: "Private lesson", Price: 4000, DurationMinutes: 60, Available: true,
		Category: models.CategoryIndividual, RequiresCoach: true, CoachID: &coach.ID,
	}
	if err := f.store.CreateService(ctx, &lesson); err != nil {
		t.Fatalf("create service: %v", err)
	}

	court2 := models.Court{Number: 2, Surface: models.SurfaceHard, OpenTime: "08:00", CloseTime: "22:00", PricePerHour: 2500, Available: true}
	if err := f.store.CreateCourt(ctx, &court2); err != nil {
		t.Fatalf("create court: %v", err)
	}

	if _, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(10, 0), DurationMinutes: 60, ServiceID: &lesson.ID,
	}); err != nil {
		t.Fatalf("first lesson: %v", err)
	}

	other := models.User{Email: "other@example.com", FullName: "Other", Role: models.RoleMember}
	if err := f.store.CreateUser(ctx, &other); err != nil {
		t.Fatalf("create other member: %v", err)
	}

	// same coach, different court, overlapping window
	_, err := f.service.Create(ctx, other, models.ReservationRequest{
		CourtNumber: 2, StartTime: tomorrowAt(10, 30), DurationMinutes: 60, ServiceID: &lesson.ID,
	})
	if !errors.Is(err, models.ErrDoubleCoachBooking) {
		t.Fatalf("got %v, want double coach booking", err)
	}
}

func TestCreateGroupCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	clinic := models.Service{
		Name: "Group clinic", Price: 1500, DurationMinutes: 60, Available: true,
		Category: models.CategoryGroup, GroupCapacity: 2,
	}
	if err := f.store.CreateService(ctx, &clinic); err != nil {
		t.Fatalf("create service: %v", err)
	}
	for n := int64(2); n <= 4; n++ {
		court := models.Court{Number: n, Surface: models.SurfaceHard, OpenTime: "08:00", CloseTime: "22:00", PricePerHour: 2500, Available: true}
		if err := f.store.CreateCourt(ctx, &court); err != nil {
			t.Fatalf("create court %d: %v", n, err)
		}
	}

	book := func(user models.User, courtNumber int64) error {
		_, err := f.service.Create(ctx, user, models.ReservationRequest{
			CourtNumber: courtNumber, StartTime: tomorrowAt(10, 0), DurationMinutes: 60, ServiceID: &clinic.ID,
		})
		return err
	}

	second := models.User{Email: "second@example.com", Role: models.RoleMember}
	third := models.User{Email: "third@example.com", Role: models.RoleMember}
	for _, u := range []*models.User{&second, &third} {
		if err := f.store.CreateUser(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	if err := book(f.member, 1); err != nil {
		t.Fatalf("first participant: %v", err)
	}
	// same member again in the same window is a duplicate booking
	if err := book(f.member, 2); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("duplicate participant: got %v, want forbidden", err)
	}
	if err := book(second, 2); err != nil {
		t.Fatalf("second participant: %v", err)
	}
	// capacity of 2 reached
	if err := book(third, 3); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("full session: got %v, want forbidden", err)
	}
}

func TestCancelPermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(10, 0), DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stranger := models.User{Email: "stranger@example.com", Role: models.RoleMember}
	if err := f.store.CreateUser(ctx, &stranger); err != nil {
		t.Fatalf("create stranger: %v", err)
	}

	if err := f.service.Cancel(ctx, stranger, created.ID); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("stranger cancel: got %v, want forbidden", err)
	}
	if err := f.service.Cancel(ctx, f.member, created.ID); err != nil {
		t.Fatalf("owner cancel: %v", err)
	}

	stored, err := f.store.GetReservationByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != models.StatusCancelled {
		t.Fatalf("status = %s, want Cancelled", stored.Status)
	}

	// re-cancel is an allowed no-op
	if err := f.service.Cancel(ctx, f.member, created.ID); err != nil {
		t.Fatalf("re-cancel: %v", err)
	}

	// admin can cancel someone else's reservation
	second, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(12, 0), DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if err := f.service.Cancel(ctx, f.admin, second.ID); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}
}

func TestCancelMissingReservation(t *testing.T) {
	f := newFixture(t)
	if err := f.service.Cancel(context.Background(), f.member, 9999); !errors.Is(err, models.ErrReservationNotFound) {
		t.Fatalf("got %v, want reservation not found", err)
	}
}

func TestModifyNotesOnlyKeepsPriceAndSkipsConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(10, 0), DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	notes := "bring spare grips"
	modified, err := f.service.Modify(ctx, f.member, created.ID, models.ReservationPatch{Notes: &notes})
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if modified.Notes != notes {
		t.Fatalf("notes = %q", modified.Notes)
	}
	if modified.TotalPrice != created.TotalPrice {
		t.Fatalf("price changed on notes-only edit: %s -> %s", created.TotalPrice, modified.TotalPrice)
	}
	if !modified.StartTime.Equal(created.StartTime) || modified.DurationMinutes != created.DurationMinutes {
		t.Fatal("time window changed on notes-only edit")
	}
}

func TestModifyTimeRevalidatesConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	blocker, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(12, 0), DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("blocker: %v", err)
	}
	target, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(10, 0), DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("target: %v", err)
	}

	newStart := tomorrowAt(12, 30)
	_, err = f.service.Modify(ctx, f.member, target.ID, models.ReservationPatch{StartTime: &newStart})
	if !errors.Is(err, models.ErrDoubleCourtBooking) {
		t.Fatalf("got %v, want double court booking", err)
	}

	// moving the blocker itself must not conflict with its own row
	shifted := tomorrowAt(12, 30)
	moved, err := f.service.Modify(ctx, f.member, blocker.ID, models.ReservationPatch{StartTime: &shifted})
	if err != nil {
		t.Fatalf("self-move: %v", err)
	}
	if !moved.EndTime.Equal(shifted.Add(time.Hour)) {
		t.Fatalf("end time not re-derived: %v", moved.EndTime)
	}
}

func TestModifyExtrasRepricesWithTier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(20, 0), DurationMinutes: 120,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// push the member to gold before the edit; modify prices with the
	// requester's current tier
	if _, err := f.service.AdjustLoyalty(ctx, f.member.ID, 140); err != nil {
		t.Fatalf("adjust loyalty: %v", err)
	}

	yes := true
	modified, err := f.service.Modify(ctx, f.member, created.ID, models.ReservationPatch{
		RentRacket: &yes, RentBalls: &yes, WantsLighting: &yes,
	})
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	// base 50.00 + 18.00 extras = 68.00, minus 10% gold = 61.20
	if modified.TotalPrice != 6120 {
		t.Fatalf("price = %s, want 61.20", modified.TotalPrice)
	}
}

func TestModifyForbiddenForStranger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.member, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(10, 0), DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stranger := models.User{Email: "stranger@example.com", Role: models.RoleMember}
	if err := f.store.CreateUser(ctx, &stranger); err != nil {
		t.Fatalf("create stranger: %v", err)
	}

	notes := "mine now"
	_, err = f.service.Modify(ctx, stranger, created.ID, models.ReservationPatch{Notes: &notes})
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("got %v, want forbidden", err)
	}
}

func TestAdjustLoyalty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	account, err := f.service.AdjustLoyalty(ctx, f.member.ID, 160)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if account.Points != 160 || account.Tier != models.TierGold {
		t.Fatalf("account = %d/%s, want 160/gold", account.Points, account.Tier)
	}

	// admin user has no loyalty account; explicit adjustment must report it
	_, err = f.service.AdjustLoyalty(ctx, f.admin.ID, 10)
	if !errors.Is(err, models.ErrLoyaltyAccountNotFound) {
		t.Fatalf("got %v, want loyalty account not found", err)
	}
}

func TestGetLoyaltyWithoutAccount(t *testing.T) {
	f := newFixture(t)

	account, err := f.service.GetLoyalty(context.Background(), f.admin.ID)
	if err != nil {
		t.Fatalf("get loyalty: %v", err)
	}
	if account.Points != 0 || account.Tier != models.TierBeginner {
		t.Fatalf("account = %d/%s, want 0/beginner", account.Points, account.Tier)
	}
}

func TestCreateWithoutLoyaltyAccountStillBooks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// admin has no loyalty account; the award is silently skipped
	created, err := f.service.Create(ctx, f.admin, models.ReservationRequest{
		CourtNumber: 1, StartTime: tomorrowAt(10, 0), DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.TotalPrice != 2500 {
		t.Fatalf("price = %s, want beginner-rate 25.00", created.TotalPrice)
	}
}

func TestListForUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, hour := range []int{9, 11, 13} {
		if _, err := f.service.Create(ctx, f.member, models.ReservationRequest{
			CourtNumber: 1, StartTime: tomorrowAt(hour, 0), DurationMinutes: 60,
		}); err != nil {
			t.Fatalf("create at %d:00: %v", hour, err)
		}
	}

	reservations, err := f.service.ListForUser(ctx, f.member.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reservations) != 3 {
		t.Fatalf("len = %d, want 3", len(reservations))
	}
	for i := 1; i < len(reservations); i++ {
		if reservations[i].StartTime.After(reservations[i-1].StartTime) {
			t.Fatal("reservations not ordered newest start first")
		}
	}
}
