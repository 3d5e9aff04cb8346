package service

import (
	"context"

	"github.com/saodatov/hotel-pms/internal/models"
	"github.com/saodatov/hotel-pms/internal/repository"
	"gorm.io/gorm"
)

// Allocator picks the room a new reservation goes into. The pick is
// deterministic: first ACTIVE room in room_number order without an active
// reservation on the date. Under concurrency the pick is only advisory;
// the partial unique index re-validates it when the reservation row is
// inserted, and the loser of that race is reported as plain
// unavailability.
type Allocator struct {
	roomRepo repository.RoomRepository
	resRepo  repository.ReservationRepository
}

func NewAllocator(roomRepo repository.RoomRepository, resRepo repository.ReservationRepository) *Allocator {
	return &Allocator{roomRepo: roomRepo, resRepo: resRepo}
}

// FindFreeRoom returns nil with no error when every active room is busy.
// The caller is responsible for having checked the booking window.
func (a *Allocator) FindFreeRoom(ctx context.Context, tx *gorm.DB, stayDate string) (*models.Room, error) {
	rooms, err := a.roomRepo.FindActiveOrdered(ctx, tx)
	if err != nil {
		return nil, err
	}

	busyIDs, err := a.resRepo.FindBusyRoomIDs(ctx, tx, stayDate)
	if err != nil {
		return nil, err
	}
	busy := make(map[uint]struct{}, len(busyIDs))
	for _, id := range busyIDs {
		busy[id] = struct{}{}
	}

	for i := range rooms {
		if _, taken := busy[rooms[i].ID]; !taken {
			return &rooms[i], nil
		}
	}
	return nil, nil
}
