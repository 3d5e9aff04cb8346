package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/saodatov/hotel-pms/internal/dto"
	"github.com/saodatov/hotel-pms/internal/middleware"
	"github.com/saodatov/hotel-pms/internal/models"
	"github.com/saodatov/hotel-pms/internal/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo) {
	users := e.Group("/api/users")
	users.GET("", h.List)
	users.POST("", h.Create)
	users.DELETE("/:id", h.Delete)
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context(), middleware.PrincipalFrom(c))
	if err != nil {
		return domainError(err)
	}

	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = dto.ToUserResponse(&users[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Create(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Role == "" {
		req.Role = string(models.RoleStaff)
	}

	user, err := h.svc.Create(
		c.Request().Context(),
		middleware.PrincipalFrom(c),
		req.Username, req.Password, models.Role(req.Role),
	)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.svc.Delete(c.Request().Context(), middleware.PrincipalFrom(c), uint(id)); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "deleted"})
}
