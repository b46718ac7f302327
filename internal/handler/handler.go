// Package handler exposes the storefront over JSON HTTP. Handlers bind and
// validate payloads, call services, and translate domain error codes into
// status codes.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"yame/internal/domain"
)

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the request validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// statusOf maps a domain error code to an HTTP status.
func statusOf(err error) int {
	switch domain.ErrorCode(err) {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError sends the error as JSON. Internal errors get logged with the
// underlying cause and a generic message goes to the client.
func writeError(c echo.Context, logger *slog.Logger, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(c.Request().Context(), "request failed",
			"op", domain.ErrorOp(err),
			"error", err,
		)
	}
	return c.JSON(status, map[string]string{"error": domain.ErrorMessage(err)})
}
