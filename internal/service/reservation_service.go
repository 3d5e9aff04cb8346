package service

import (
	"context"
	"errors"
	"strings"

	"github.com/saodatov/hotel-pms/internal/auth"
	"github.com/saodatov/hotel-pms/internal/clock"
	"github.com/saodatov/hotel-pms/internal/metrics"
	"github.com/saodatov/hotel-pms/internal/models"
	"github.com/saodatov/hotel-pms/internal/notifier"
	"github.com/saodatov/hotel-pms/internal/repository"
	"github.com/saodatov/hotel-pms/pkg/database"
	"gorm.io/gorm"
)

type GuestInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// TransitionFunc is the shared shape of Cancel, CheckIn and CheckOut.
type TransitionFunc func(ctx context.Context, principal *auth.Principal, id uint) (*models.Reservation, error)

type ReservationService interface {
	Create(ctx context.Context, principal *auth.Principal, guest GuestInput, stayDate string) (*models.Reservation, error)
	Cancel(ctx context.Context, principal *auth.Principal, id uint) (*models.Reservation, error)
	CheckIn(ctx context.Context, principal *auth.Principal, id uint) (*models.Reservation, error)
	CheckOut(ctx context.Context, principal *auth.Principal, id uint) (*models.Reservation, error)
	List(ctx context.Context, principal *auth.Principal, stayDate *string) ([]models.Reservation, error)
}

type reservationService struct {
	resRepo   repository.ReservationRepository
	guestRepo repository.GuestRepository
	allocator *Allocator
	clk       *clock.HotelClock
	notifier  notifier.Notifier
}

func NewReservationService(
	resRepo repository.ReservationRepository,
	guestRepo repository.GuestRepository,
	allocator *Allocator,
	clk *clock.HotelClock,
	n notifier.Notifier,
) ReservationService {
	return &reservationService{
		resRepo:   resRepo,
		guestRepo: guestRepo,
		allocator: allocator,
		clk:       clk,
		notifier:  n,
	}
}

func (s *reservationService) Create(ctx context.Context, principal *auth.Principal, guest GuestInput, stayDate string) (*models.Reservation, error) {
	if err := auth.RequireRole(principal, models.RoleStaff, models.RoleSuperuser); err != nil {
		return nil, err
	}

	if strings.TrimSpace(guest.FirstName) == "" ||
		strings.TrimSpace(guest.LastName) == "" ||
		strings.TrimSpace(guest.Email) == "" ||
		strings.TrimSpace(guest.Phone) == "" {
		return nil, ErrMissingGuestFields
	}

	date, err := s.clk.ParseDate(stayDate)
	if err != nil {
		return nil, ErrInvalidStayDate
	}
	if !s.clk.WithinWindow(date) {
		return nil, ErrDateOutsideWindow
	}
	dateISO := clock.FormatDate(date)

	var result *models.Reservation

	err = s.resRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Advisory pick of a free room
		room, err := s.allocator.FindFreeRoom(ctx, tx, dateISO)
		if err != nil {
			return err
		}
		if room == nil {
			return ErrNoAvailability
		}

		// 2. Guest row and reservation row commit or fail together
		g := &models.Guest{
			FirstName: strings.TrimSpace(guest.FirstName),
			LastName:  strings.TrimSpace(guest.LastName),
			Email:     strings.TrimSpace(guest.Email),
			Phone:     strings.TrimSpace(guest.Phone),
		}
		if err := s.guestRepo.Create(ctx, tx, g); err != nil {
			return err
		}

		res := &models.Reservation{
			RoomID:   room.ID,
			GuestID:  g.ID,
			StayDate: dateISO,
			Status:   models.StatusBooked,
		}
		if err := s.resRepo.Create(ctx, tx, res); err != nil {
			// 3. A concurrent create won the same room/date between our
			// read and this insert. The caller sees the same condition
			// as plain unavailability.
			if database.IsUniqueViolation(err) {
				return ErrNoAvailability
			}
			return err
		}

		res.Room = room
		res.Guest = g
		result = res
		return nil
	})
	if err != nil {
		// Engines that defer the constraint check surface the violation
		// from the commit itself.
		if database.IsUniqueViolation(err) {
			err = ErrNoAvailability
		}
		if errors.Is(err, ErrNoAvailability) {
			metrics.Conflicts.Inc()
		}
		return nil, err
	}

	metrics.ReservationsCreated.Inc()
	s.notifier.Notify(notifier.KindCreated, result.Guest, result, result.Room)
	return result, nil
}

func (s *reservationService) Cancel(ctx context.Context, principal *auth.Principal, id uint) (*models.Reservation, error) {
	res, err := s.transition(ctx, principal, id, models.StatusCancelled, func(from models.ReservationStatus) bool {
		return from.IsActive()
	})
	if err != nil {
		return nil, err
	}
	metrics.ReservationsCancelled.Inc()
	s.notifier.Notify(notifier.KindCancelled, res.Guest, res, res.Room)
	return res, nil
}

func (s *reservationService) CheckIn(ctx context.Context, principal *auth.Principal, id uint) (*models.Reservation, error) {
	return s.transition(ctx, principal, id, models.StatusCheckedIn, func(from models.ReservationStatus) bool {
		return from == models.StatusBooked
	})
}

func (s *reservationService) CheckOut(ctx context.Context, principal *auth.Principal, id uint) (*models.Reservation, error) {
	return s.transition(ctx, principal, id, models.StatusCheckedOut, func(from models.ReservationStatus) bool {
		return from == models.StatusCheckedIn
	})
}

// transition implements the load-guard-update-commit pattern shared by
// cancel, check-in and check-out.
func (s *reservationService) transition(
	ctx context.Context,
	principal *auth.Principal,
	id uint,
	to models.ReservationStatus,
	allowed func(from models.ReservationStatus) bool,
) (*models.Reservation, error) {
	if err := auth.RequireRole(principal, models.RoleStaff, models.RoleSuperuser); err != nil {
		return nil, err
	}

	var result *models.Reservation

	err := s.resRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.resRepo.FindByIDWithRelations(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		if !allowed(res.Status) {
			return ErrInvalidTransition
		}

		if err := s.resRepo.UpdateStatus(ctx, tx, id, to); err != nil {
			return err
		}

		res.Status = to
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *reservationService) List(ctx context.Context, principal *auth.Principal, stayDate *string) ([]models.Reservation, error) {
	if err := auth.RequireRole(principal, models.RoleStaff, models.RoleSuperuser); err != nil {
		return nil, err
	}

	var filter *string
	if stayDate != nil && *stayDate != "" {
		date, err := s.clk.ParseDate(*stayDate)
		if err != nil {
			return nil, ErrInvalidStayDate
		}
		iso := clock.FormatDate(date)
		filter = &iso
	}

	return s.resRepo.FindAll(ctx, filter)
}
