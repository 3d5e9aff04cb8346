package service

import "errors"

var (
	ErrInvalidStayDate      = errors.New("stay date must be a valid YYYY-MM-DD date")
	ErrDateOutsideWindow    = errors.New("stay date must be within the booking window")
	ErrMissingGuestFields   = errors.New("first name, last name, email and phone are required")
	ErrNoAvailability       = errors.New("no rooms available on this date")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrInvalidTransition    = errors.New("reservation not in a valid state for this operation")
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidRole          = errors.New("role must be STAFF or SUPERUSER")
	ErrMissingUserFields    = errors.New("username and password are required")
	ErrCannotDeleteYourself = errors.New("cannot delete the user you are logged in as")
)
