package service

import (
	"context"
	"sync"
	"testing"

	"github.com/saodatov/hotel-pms/internal/auth"
	"github.com/saodatov/hotel-pms/internal/models"
	"github.com/saodatov/hotel-pms/internal/notifier"
	"github.com/saodatov/hotel-pms/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservation_Success(t *testing.T) {
	env := newTestEnv(t)
	seedRooms(t, env.db, "101", "102")
	ctx := context.Background()

	res, err := env.svc.Create(ctx, staffPrincipal, sampleGuest(), env.today())
	require.NoError(t, err)

	assert.Equal(t, models.StatusBooked, res.Status)
	assert.Equal(t, env.today(), res.StayDate)
	require.NotNil(t, res.Room)
	assert.Equal(t, "101", res.Room.RoomNumber, "lowest room number is picked first")
	require.NotNil(t, res.Guest)
	assert.Equal(t, "John", res.Guest.FirstName)

	// guest row persisted alongside the reservation
	var guests int64
	require.NoError(t, env.db.Model(&models.Guest{}).Count(&guests).Error)
	assert.EqualValues(t, 1, guests)

	assert.Equal(t, []notifier.Kind{notifier.KindCreated}, env.notifier.sent())
}

func TestCreateReservation_AccessGuard(t *testing.T) {
	env := newTestEnv(t)
	seedRooms(t, env.db, "101")
	ctx := context.Background()

	_, err := env.svc.Create(ctx, nil, sampleGuest(), env.today())
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	viewer := &auth.Principal{ID: 9, Username: "viewer", Role: models.Role("VIEWER")}
	_, err = env.svc.Create(ctx, viewer, sampleGuest(), env.today())
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestCreateReservation_Validation(t *testing.T) {
	env := newTestEnv(t)
	seedRooms(t, env.db, "101")
	ctx := context.Background()

	guest := sampleGuest()
	guest.Email = "  "
	_, err := env.svc.Create(ctx, staffPrincipal, guest, env.today())
	assert.ErrorIs(t, err, ErrMissingGuestFields)

	_, err = env.svc.Create(ctx, staffPrincipal, sampleGuest(), "31/12/2026")
	assert.ErrorIs(t, err, ErrInvalidStayDate)

	_, err = env.svc.Create(ctx, staffPrincipal, sampleGuest(), "2026-02-31")
	assert.ErrorIs(t, err, ErrInvalidStayDate)
}

func TestCreateReservation_WindowBounds(t *testing.T) {
	env := newTestEnv(t)
	seedRooms(t, env.db, "101")
	ctx := context.Background()

	_, err := env.svc.Create(ctx, staffPrincipal, sampleGuest(), env.todayPlus(-1))
	assert.ErrorIs(t, err, ErrDateOutsideWindow, "yesterday is rejected")

	_, err = env.svc.Create(ctx, staffPrincipal, sampleGuest(), env.todayPlus(5))
	assert.ErrorIs(t, err, ErrDateOutsideWindow, "one past the window is rejected")

	first, err := env.svc.Create(ctx, staffPrincipal, sampleGuest(), env.today())
	require.NoError(t, err, "first window day is bookable")
	assert.Equal(t, models.StatusBooked, first.Status)

	last, err := env.svc.Create(ctx, staffPrincipal, sampleGuest(), env.todayPlus(4))
	require.NoError(t, err, "last window day is bookable")
	assert.Equal(t, models.StatusBooked, last.Status)
}

func TestCreateReservation_Exhaustion(t *testing.T) {
	env := newTestEnv(t)
	seedRooms(t, env.db, "101")
	ctx := context.Background()

	_, err := env.svc.Create(ctx, staffPrincipal, sampleGuest(), env.today())
	require.NoError(t, err)

	_, err = env.svc.Create(ctx, staffPrincipal, sampleGuest(), env.today())
	assert.ErrorIs(t, err, ErrNoAvailability)
}

func TestAllocator_Deterministic(t *testing.T) {
	env := newTestEnv(t)
	rooms := seedRooms(t, env.db, "101", "102", "103")
	ctx := context.Background()

	// occupy 101 and 102, leaving exactly one free room
	for _, r := range rooms[:2] {
		require.NoError(t, env.db.Create(&models.Reservation{
			RoomID: r.ID, GuestID: 1, StayDate: env.today(), Status: models.StatusBooked,
		}).Error)
	}

	allocator := NewAllocator(env.roomRepo, env.resRepo)
	for i := 0; i < 3; i++ {
		room, err := allocator.FindFreeRoom(ctx, env.db, env.today())
		require.NoError(t, err)
		require.NotNil(t, room)
		assert.Equal(t, "103", room.RoomNumber, "same store state must yield the same pick")
	}
}

func TestAllocator_SkipsOutOfServiceRooms(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.db.Create(&models.Room{
		RoomNumber: "101", Status: models.RoomOutOfService, BaseRate: 100,
	}).Error)
	seedRooms(t, env.db, "102")

	allocator := NewAllocator(env.roomRepo, env.resRepo)
	room, err := allocator.FindFreeRoom(ctx, env.db, env.today())
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, "102", room.RoomNumber)
}

func TestLifecycle_EndToEnd(t *testing.T) {
	env := newTestEnv(t)
	seedRooms(t, env.db, "101")
	ctx := context.Background()

	res, err := env.svc.Create(ctx, staffPrincipal, sampleGuest(), env.today())
	require.NoError(t, err)
	assert.Equal(t, models.StatusBooked, res.Status)

	res, err = env.svc.CheckIn(ctx, staffPrincipal, res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCheckedIn, res.Status)

	res, err = env.svc.CheckOut(ctx, staffPrincipal, res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCheckedOut, res.Status)

	_, err = env.svc.Cancel(ctx, staffPrincipal, res.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "checked-out reservations cannot be cancelled")
}

func TestLifecycle_IllegalTransitions(t *testing.T) {
	env := newTestEnv(t)
	seedRooms(t, env.db, "101")
	ctx := context.Background()

	res, err := env.svc.Create(ctx, staffPrincipal, sampleGuest(), env.today())
	require.NoError(t, err)

	_, err = env.svc.CheckOut(ctx, staffPrincipal, res.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "check-out requires a prior check-in")

	_, err = env.svc.CheckIn(ctx, staffPrincipal, res.ID)
	require.NoError(t, err)

	_, err = env.svc.CheckIn(ctx, staffPrincipal, res.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "second check-in is rejected")
}

func TestCancel_FreesTheRoom(t *testing.T) {
	env := newTestEnv(t)
	seedRooms(t, env.db, "101")
	ctx := context.Background()

	res, err := env.svc.Create(ctx, staffPrincipal, sampleGuest(), env.today())
	require.NoError(t, err)

	cancelled, err := env.svc.Cancel(ctx, staffPrincipal, res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, []notifier.Kind{notifier.KindCreated, notifier.KindCancelled}, env.notifier.sent())

	// cancelled history does not block a new booking for the same room/date
	again, err := env.svc.Create(ctx, staffPrincipal, sampleGuest(), env.today())
	require.NoError(t, err)
	assert.Equal(t, res.RoomID, again.RoomID)
}

func TestCancel_NotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Cancel(ctx, staffPrincipal, 9999)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestUniquenessInvariant_ConstraintLevel(t *testing.T) {
	env := newTestEnv(t)
	rooms := seedRooms(t, env.db, "101")
	ctx := context.Background()

	first := &models.Reservation{RoomID: rooms[0].ID, GuestID: 1, StayDate: env.today(), Status: models.StatusBooked}
	require.NoError(t, env.resRepo.Create(ctx, env.db, first))

	// second active reservation for the same room/date hits the partial
	// unique index regardless of the allocator
	dup := &models.Reservation{RoomID: rooms[0].ID, GuestID: 2, StayDate: env.today(), Status: models.StatusCheckedIn}
	err := env.resRepo.Create(ctx, env.db, dup)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	// non-active history on the same room/date is allowed
	done := &models.Reservation{RoomID: rooms[0].ID, GuestID: 3, StayDate: env.today(), Status: models.StatusCancelled}
	assert.NoError(t, env.resRepo.Create(ctx, env.db, done))
}

func TestConcurrentCreate_ExactlyOneWins(t *testing.T) {
	env := newTestEnv(t)
	seedRooms(t, env.db, "101")
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.Create(ctx, staffPrincipal, sampleGuest(), env.today())
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		default:
			assert.ErrorIs(t, err, ErrNoAvailability, "the race loser sees plain unavailability")
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, conflicts)

	var active int64
	require.NoError(t, env.db.Model(&models.Reservation{}).
		Where("stay_date = ? AND status IN ?", env.today(),
			[]models.ReservationStatus{models.StatusBooked, models.StatusCheckedIn}).
		Count(&active).Error)
	assert.EqualValues(t, 1, active, "exactly one active reservation may exist for the room/date")
}

func TestList_DateFilter(t *testing.T) {
	env := newTestEnv(t)
	seedRooms(t, env.db, "101", "102")
	ctx := context.Background()

	_, err := env.svc.Create(ctx, staffPrincipal, sampleGuest(), env.today())
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, staffPrincipal, sampleGuest(), env.todayPlus(1))
	require.NoError(t, err)

	all, err := env.svc.List(ctx, staffPrincipal, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	today := env.today()
	filtered, err := env.svc.List(ctx, staffPrincipal, &today)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, today, filtered[0].StayDate)
	require.NotNil(t, filtered[0].Guest, "listing includes guest details")
	require.NotNil(t, filtered[0].Room, "listing includes room details")

	bad := "not-a-date"
	_, err = env.svc.List(ctx, staffPrincipal, &bad)
	assert.ErrorIs(t, err, ErrInvalidStayDate)
}
