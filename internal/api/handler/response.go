package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vendora/catalog-api/internal/api/metrics"
	"github.com/vendora/catalog-api/internal/core/domain"
)

const validationFailed = "Validation failed"

// envelope is the response body shared by every endpoint.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type userResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

func success(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

// fail maps err to a status and envelope. Errors without a known mapping are
// logged and answered with internalMsg and 500.
func fail(c echo.Context, log zerolog.Logger, err error, internalMsg string) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		msg := ve.Message
		if msg == "" {
			msg = validationFailed
		}
		return c.JSON(http.StatusUnprocessableEntity, envelope{Message: msg, Errors: ve.Fields})
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusBadRequest, envelope{Message: "Login credentials are invalid."})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, envelope{Message: "Unauthorized"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, envelope{Message: "User not found"})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.JSON(http.StatusNotFound, envelope{Message: "Sorry, product not found."})
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg(internalMsg)
	return c.JSON(http.StatusInternalServerError, envelope{Message: internalMsg})
}

// resultOf turns an operation outcome into a metrics result label.
func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidCredentials):
		return metrics.ResultInvalid
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrUserNotFound):
		return metrics.ResultNotFound
	default:
		return metrics.ResultError
	}
}
