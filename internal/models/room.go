package models

type RoomStatus string

const (
	RoomActive       RoomStatus = "ACTIVE"
	RoomOutOfService RoomStatus = "OUT_OF_SERVICE"
)

type Room struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	RoomNumber string     `gorm:"uniqueIndex;not null" json:"room_number"`
	Status     RoomStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	BaseRate   float64    `gorm:"not null;default:100.00" json:"base_rate"`
}
