package models

import "time"

type ReservationStatus string

const (
	StatusBooked     ReservationStatus = "BOOKED"
	StatusCheckedIn  ReservationStatus = "CHECKED_IN"
	StatusCheckedOut ReservationStatus = "CHECKED_OUT"
	StatusCancelled  ReservationStatus = "CANCELLED"
	StatusNoShow     ReservationStatus = "NO_SHOW"
)

// IsActive reports whether the reservation still holds its room for the
// stay date. Only active reservations count against availability and only
// they participate in the partial unique index on (room_id, stay_date).
func (s ReservationStatus) IsActive() bool {
	return s == StatusBooked || s == StatusCheckedIn
}

// StayDate is stored as an ISO "YYYY-MM-DD" string so that date equality
// is a plain string comparison on every engine.
type Reservation struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	RoomID    uint              `gorm:"not null" json:"room_id"`
	GuestID   uint              `gorm:"not null" json:"guest_id"`
	StayDate  string            `gorm:"type:varchar(10);not null" json:"stay_date"`
	Status    ReservationStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	Room  *Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Guest *Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
}
