package repository

import (
	"context"

	"github.com/saodatov/hotel-pms/internal/models"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	FindByIDWithRelations(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error)
	FindBusyRoomIDs(ctx context.Context, tx *gorm.DB, stayDate string) ([]uint, error)
	FindActiveInRange(ctx context.Context, tx *gorm.DB, fromDate, toDate string) ([]models.Reservation, error)
	FindAll(ctx context.Context, stayDate *string) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ReservationStatus) error
	GetDB() *gorm.DB
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return tx.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) FindByIDWithRelations(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
	if tx == nil {
		tx = r.db
	}
	var reservation models.Reservation
	err := tx.WithContext(ctx).
		Preload("Room").
		Preload("Guest").
		First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindBusyRoomIDs returns the rooms holding an active reservation on the
// given stay date.
func (r *reservationRepository) FindBusyRoomIDs(ctx context.Context, tx *gorm.DB, stayDate string) ([]uint, error) {
	if tx == nil {
		tx = r.db
	}
	var ids []uint
	err := tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("stay_date = ? AND status IN ?", stayDate, []models.ReservationStatus{models.StatusBooked, models.StatusCheckedIn}).
		Pluck("room_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *reservationRepository) FindActiveInRange(ctx context.Context, tx *gorm.DB, fromDate, toDate string) ([]models.Reservation, error) {
	if tx == nil {
		tx = r.db
	}
	var reservations []models.Reservation
	err := tx.WithContext(ctx).
		Where("stay_date BETWEEN ? AND ? AND status IN ?",
			fromDate, toDate,
			[]models.ReservationStatus{models.StatusBooked, models.StatusCheckedIn}).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) FindAll(ctx context.Context, stayDate *string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	q := r.db.WithContext(ctx).Preload("Room").Preload("Guest")
	if stayDate != nil {
		q = q.Where("stay_date = ?", *stayDate)
	}
	if err := q.Order("id ASC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ReservationStatus) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("status", status).Error
}
