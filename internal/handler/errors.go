package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/saodatov/hotel-pms/internal/auth"
	"github.com/saodatov/hotel-pms/internal/service"
)

// domainError maps service-layer failures onto HTTP statuses. Anything
// outside the domain taxonomy is an infrastructure fault and stays a 500.
func domainError(err error) error {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrReservationNotFound), errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidStayDate),
		errors.Is(err, service.ErrDateOutsideWindow),
		errors.Is(err, service.ErrMissingGuestFields),
		errors.Is(err, service.ErrNoAvailability),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrMissingUserFields),
		errors.Is(err, service.ErrCannotDeleteYourself):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
