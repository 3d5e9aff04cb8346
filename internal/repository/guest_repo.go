package repository

import (
	"context"

	"github.com/saodatov/hotel-pms/internal/models"
	"gorm.io/gorm"
)

type GuestRepository interface {
	Create(ctx context.Context, tx *gorm.DB, guest *models.Guest) error
}

type guestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) GuestRepository {
	return &guestRepository{db: db}
}

func (r *guestRepository) Create(ctx context.Context, tx *gorm.DB, guest *models.Guest) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(guest).Error
}
