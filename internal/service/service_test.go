package service

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/saodatov/hotel-pms/internal/auth"
	"github.com/saodatov/hotel-pms/internal/clock"
	"github.com/saodatov/hotel-pms/internal/models"
	"github.com/saodatov/hotel-pms/internal/notifier"
	"github.com/saodatov/hotel-pms/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Shared fixtures for the service tests: a real embedded store per test
// (temp file, same schema and partial unique index as production) and a
// recording notifier.

var (
	staffPrincipal     = &auth.Principal{ID: 2, Username: "staff1", Role: models.RoleStaff}
	superuserPrincipal = &auth.Principal{ID: 1, Username: "superuser", Role: models.RoleSuperuser}
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "pms_test.db") + "?_txlock=immediate&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Guest{},
		&models.Reservation{},
	))
	require.NoError(t, db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS ux_room_date_active
		ON reservations (room_id, stay_date)
		WHERE status IN ('BOOKED', 'CHECKED_IN')
	`).Error)

	return db
}

func seedRooms(t *testing.T, db *gorm.DB, numbers ...string) []models.Room {
	t.Helper()
	rooms := make([]models.Room, len(numbers))
	for i, n := range numbers {
		rooms[i] = models.Room{RoomNumber: n, Status: models.RoomActive, BaseRate: 100}
		require.NoError(t, db.Create(&rooms[i]).Error)
	}
	return rooms
}

type recordingNotifier struct {
	mu        sync.Mutex
	kinds     []notifier.Kind
	reminders int
}

func (n *recordingNotifier) Notify(kind notifier.Kind, _ *models.Guest, _ *models.Reservation, _ *models.Room) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, kind)
}

func (n *recordingNotifier) SuperuserPasswordReminder() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reminders++
}

func (n *recordingNotifier) sent() []notifier.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifier.Kind(nil), n.kinds...)
}

type testEnv struct {
	db        *gorm.DB
	clk       *clock.HotelClock
	notifier  *recordingNotifier
	resRepo   repository.ReservationRepository
	roomRepo  repository.RoomRepository
	guestRepo repository.GuestRepository
	svc       ReservationService
	gridSvc   GridService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	clk, err := clock.New("Europe/London", 5)
	require.NoError(t, err)

	roomRepo := repository.NewRoomRepository(db)
	resRepo := repository.NewReservationRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	rec := &recordingNotifier{}
	allocator := NewAllocator(roomRepo, resRepo)

	return &testEnv{
		db:        db,
		clk:       clk,
		notifier:  rec,
		resRepo:   resRepo,
		roomRepo:  roomRepo,
		guestRepo: guestRepo,
		svc:       NewReservationService(resRepo, guestRepo, allocator, clk, rec),
		gridSvc:   NewGridService(roomRepo, resRepo, clk),
	}
}

func sampleGuest() GuestInput {
	return GuestInput{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Phone:     "1234567890",
	}
}

func (e *testEnv) today() string {
	return clock.FormatDate(e.clk.Today())
}

func (e *testEnv) todayPlus(days int) string {
	return clock.FormatDate(e.clk.Today().AddDate(0, 0, days))
}
