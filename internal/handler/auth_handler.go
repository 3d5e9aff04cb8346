package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/saodatov/hotel-pms/internal/dto"
	"github.com/saodatov/hotel-pms/internal/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/login", h.Login)
	e.POST("/api/superuser-forgot-password", h.ForgotPassword)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	msg := h.svc.SuperuserForgotPassword(c.Request().Context())
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}
