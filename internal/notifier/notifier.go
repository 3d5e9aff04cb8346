// Package notifier sends reservation notifications. Notification is
// fire-and-forget: lifecycle transactions commit first and never roll back
// or block on a failed notification.
package notifier

import (
	"fmt"
	"log"

	"github.com/saodatov/hotel-pms/config"
	"github.com/saodatov/hotel-pms/internal/models"
	"github.com/saodatov/hotel-pms/pkg/rabbitmq"
)

type Kind string

const (
	KindCreated   Kind = "CREATED"
	KindCancelled Kind = "CANCELLED"
)

type Notifier interface {
	Notify(kind Kind, guest *models.Guest, reservation *models.Reservation, room *models.Room)
	SuperuserPasswordReminder()
}

type notification struct {
	Kind          Kind   `json:"kind"`
	ReservationID uint   `json:"reservation_id"`
	RoomNumber    string `json:"room_number"`
	StayDate      string `json:"stay_date"`
	GuestEmail    string `json:"guest_email"`
}

// EmailNotifier writes the guest-facing email text to the log (emails are
// simulated, there is no SMTP credential in this deployment) and mirrors
// each notification onto the reservations exchange when a publisher is
// configured.
type EmailNotifier struct {
	cfg       *config.Config
	publisher *rabbitmq.Publisher // nil = skip MQ
}

func NewEmailNotifier(cfg *config.Config, publisher *rabbitmq.Publisher) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, publisher: publisher}
}

func (n *EmailNotifier) Notify(kind Kind, guest *models.Guest, reservation *models.Reservation, room *models.Room) {
	switch kind {
	case KindCreated:
		subject := fmt.Sprintf("Reservation Created - %s", config.HotelName)
		body := fmt.Sprintf(
			"Dear %s %s,\n\nYour reservation at %s has been created.\n\nStay date: %s\nRoom: %s\nRate: %.2f %s\nStatus: BOOKED\n",
			guest.FirstName, guest.LastName, config.HotelName,
			reservation.StayDate, room.RoomNumber, room.BaseRate, config.Currency,
		)
		n.sendEmail(guest.Email, subject, body)
	case KindCancelled:
		subject := fmt.Sprintf("Reservation Cancelled - %s", config.HotelName)
		body := fmt.Sprintf(
			"Dear %s %s,\n\nYour reservation at %s on %s has been cancelled.\n\nRoom: %s\n\nRegards,\n%s\n",
			guest.FirstName, guest.LastName, config.HotelName,
			reservation.StayDate, room.RoomNumber, config.HotelName,
		)
		n.sendEmail(guest.Email, subject, body)
	default:
		log.Printf("[Notifier] unknown notification kind %q", kind)
		return
	}

	if n.publisher != nil {
		key := "reservation.created"
		if kind == KindCancelled {
			key = "reservation.cancelled"
		}
		if err := n.publisher.Publish(key, notification{
			Kind:          kind,
			ReservationID: reservation.ID,
			RoomNumber:    room.RoomNumber,
			StayDate:      reservation.StayDate,
			GuestEmail:    guest.Email,
		}); err != nil {
			log.Printf("[Notifier] publish %s: %v", key, err)
		}
	}
}

func (n *EmailNotifier) SuperuserPasswordReminder() {
	subject := fmt.Sprintf("Superuser Password Reminder - %s", config.HotelName)
	body := fmt.Sprintf("The default superuser password is: %s\n", config.SuperuserDefaultPassword)
	n.sendEmail(config.SuperuserEmail, subject, body)
}

func (n *EmailNotifier) sendEmail(to, subject, body string) {
	log.Printf("SIMULATED EMAIL:\nFrom: %s\nTo: %s\nSubject: %s\nBody:\n%s", n.cfg.SenderEmail, to, subject, body)
}
