package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/saodatov/hotel-pms/internal/dto"
	"github.com/saodatov/hotel-pms/internal/middleware"
	"github.com/saodatov/hotel-pms/internal/service"
)

type ReservationHandler struct {
	svc     service.ReservationService
	gridSvc service.GridService
}

func NewReservationHandler(svc service.ReservationService, gridSvc service.GridService) *ReservationHandler {
	return &ReservationHandler{svc: svc, gridSvc: gridSvc}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/grid", h.Grid)
	e.GET("/api/reservations", h.List)
	e.POST("/api/guest-reservations", h.Create)

	res := e.Group("/api/reservations")
	res.POST("/:id/check-in", h.CheckIn)
	res.POST("/:id/check-out", h.CheckOut)
	res.POST("/:id/cancel", h.Cancel)
}

func (h *ReservationHandler) Create(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.svc.Create(
		c.Request().Context(),
		middleware.PrincipalFrom(c),
		service.GuestInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		},
		req.StayDate,
	)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToReservationResponse(res))
}

func (h *ReservationHandler) List(c echo.Context) error {
	var dateFilter *string
	if d := c.QueryParam("date"); d != "" {
		dateFilter = &d
	}

	reservations, err := h.svc.List(c.Request().Context(), middleware.PrincipalFrom(c), dateFilter)
	if err != nil {
		return domainError(err)
	}

	resp := make([]dto.ReservationResponse, len(reservations))
	for i := range reservations {
		resp[i] = dto.ToReservationResponse(&reservations[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) CheckIn(c echo.Context) error {
	return h.transition(c, h.svc.CheckIn)
}

func (h *ReservationHandler) CheckOut(c echo.Context) error {
	return h.transition(c, h.svc.CheckOut)
}

func (h *ReservationHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.svc.Cancel)
}

func (h *ReservationHandler) transition(c echo.Context, op service.TransitionFunc) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	res, err := op(c.Request().Context(), middleware.PrincipalFrom(c), uint(id))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(res))
}

func (h *ReservationHandler) Grid(c echo.Context) error {
	grid, err := h.gridSvc.Build(c.Request().Context(), middleware.PrincipalFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, dto.ToGridResponse(grid))
}
