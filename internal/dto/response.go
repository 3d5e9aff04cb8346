package dto

import (
	"time"

	"github.com/saodatov/hotel-pms/internal/clock"
	"github.com/saodatov/hotel-pms/internal/models"
	"github.com/saodatov/hotel-pms/internal/service"
)

type ReservationResponse struct {
	ID         uint                     `json:"reservation_id"`
	RoomNumber string                   `json:"room_number"`
	StayDate   string                   `json:"stay_date"`
	Status     models.ReservationStatus `json:"status"`
	GuestName  string                   `json:"guest_name,omitempty"`
	GuestEmail string                   `json:"guest_email,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
}

type RoomResponse struct {
	ID         uint   `json:"id"`
	RoomNumber string `json:"room_number"`
}

type GridResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	Dates []string       `json:"dates"`
	Grid  [][]string     `json:"grid"`
}

type UserResponse struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:        r.ID,
		StayDate:  r.StayDate,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
	if r.Room != nil {
		resp.RoomNumber = r.Room.RoomNumber
	}
	if r.Guest != nil {
		resp.GuestName = r.Guest.FirstName + " " + r.Guest.LastName
		resp.GuestEmail = r.Guest.Email
	}
	return resp
}

func ToGridResponse(g *service.Grid) GridResponse {
	rooms := make([]RoomResponse, len(g.Rooms))
	for i, room := range g.Rooms {
		rooms[i] = RoomResponse{ID: room.ID, RoomNumber: room.RoomNumber}
	}
	dates := make([]string, len(g.Dates))
	for i, d := range g.Dates {
		dates[i] = clock.FormatDate(d)
	}
	return GridResponse{Rooms: rooms, Dates: dates, Grid: g.Matrix}
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt}
}
