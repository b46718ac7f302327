package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"yame/internal/domain"
	"yame/internal/middleware"
	"yame/internal/service"
)

// AuthHandler serves registration, login, and profile endpoints.
type AuthHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts service.AccountService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, logger: logger.With("handler", "auth")}
}

type authResponse struct {
	User      domain.Profile `json:"user"`
	Token     string         `json:"token"`
	ExpiresIn int            `json:"expiresIn"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req domain.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.accounts.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, authResponse{
		User:      result.Profile,
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req domain.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.accounts.Login(c.Request().Context(), req)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, authResponse{
		User:      result.Profile,
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
	})
}

// Profile handles GET /api/v1/auth/profile
func (h *AuthHandler) Profile(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	profile, err := h.accounts.Profile(c.Request().Context(), *userID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req domain.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.accounts.UpdateProfile(c.Request().Context(), *userID, req)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// ChangePassword handles PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req domain.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.accounts.ChangePassword(c.Request().Context(), *userID, req); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}
