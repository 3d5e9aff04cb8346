package repository

import (
	"context"

	"github.com/saodatov/hotel-pms/internal/models"
	"gorm.io/gorm"
)

type RoomRepository interface {
	FindActiveOrdered(ctx context.Context, tx *gorm.DB) ([]models.Room, error)
	FindByID(ctx context.Context, id uint) (*models.Room, error)
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

// FindActiveOrdered returns ACTIVE rooms ordered by room_number ascending.
// The allocator depends on this ordering being stable: identical store
// state must always yield the same pick.
func (r *roomRepository) FindActiveOrdered(ctx context.Context, tx *gorm.DB) ([]models.Room, error) {
	if tx == nil {
		tx = r.db
	}
	var rooms []models.Room
	err := tx.WithContext(ctx).
		Where("status = ?", models.RoomActive).
		Order("room_number ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}
