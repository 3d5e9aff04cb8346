package service

import (
	"context"
	"time"

	"github.com/saodatov/hotel-pms/internal/auth"
	"github.com/saodatov/hotel-pms/internal/clock"
	"github.com/saodatov/hotel-pms/internal/models"
	"github.com/saodatov/hotel-pms/internal/repository"
	"gorm.io/gorm"
)

const GridFree = "FREE"

// Grid is the room x date occupancy matrix the frontend renders.
// Matrix[r][d] is the reservation status for Rooms[r] on Dates[d], or
// "FREE".
type Grid struct {
	Rooms  []models.Room
	Dates  []time.Time
	Matrix [][]string
}

type GridService interface {
	Build(ctx context.Context, principal *auth.Principal) (*Grid, error)
}

type gridService struct {
	roomRepo repository.RoomRepository
	resRepo  repository.ReservationRepository
	clk      *clock.HotelClock
}

func NewGridService(roomRepo repository.RoomRepository, resRepo repository.ReservationRepository, clk *clock.HotelClock) GridService {
	return &gridService{roomRepo: roomRepo, resRepo: resRepo, clk: clk}
}

// Build reads rooms and reservations inside one read-only transaction so
// the matrix is a single consistent snapshot; a booking committing
// concurrently can make it stale, never internally inconsistent.
func (s *gridService) Build(ctx context.Context, principal *auth.Principal) (*Grid, error) {
	if err := auth.RequireRole(principal, models.RoleStaff, models.RoleSuperuser); err != nil {
		return nil, err
	}

	dates := s.clk.BookingWindow()
	fromISO := clock.FormatDate(dates[0])
	toISO := clock.FormatDate(dates[len(dates)-1])

	var (
		rooms        []models.Room
		reservations []models.Reservation
	)
	err := s.resRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if rooms, err = s.roomRepo.FindActiveOrdered(ctx, tx); err != nil {
			return err
		}
		if reservations, err = s.resRepo.FindActiveInRange(ctx, tx, fromISO, toISO); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	type cell struct {
		roomID uint
		date   string
	}
	statusByCell := make(map[cell]models.ReservationStatus, len(reservations))
	for _, res := range reservations {
		statusByCell[cell{res.RoomID, res.StayDate}] = res.Status
	}

	matrix := make([][]string, len(rooms))
	for r, room := range rooms {
		row := make([]string, len(dates))
		for d, date := range dates {
			if status, ok := statusByCell[cell{room.ID, clock.FormatDate(date)}]; ok {
				row[d] = string(status)
			} else {
				row[d] = GridFree
			}
		}
		matrix[r] = row
	}

	return &Grid{Rooms: rooms, Dates: dates, Matrix: matrix}, nil
}
