package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vendora/catalog-api/internal/api/metrics"
	"github.com/vendora/catalog-api/internal/api/middleware"
	"github.com/vendora/catalog-api/internal/core/ports"
)

type AccountHandler struct {
	service ports.AccountService
	log     zerolog.Logger
}

func NewAccountHandler(service ports.AccountService, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{service: service, log: log}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  envelope{data=domain.User}
// @Failure      422   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /auth/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return fail(c, h.log, withInputErrors(err, req.toInput()), "Failed to create user")
	}

	user, err := h.service.Register(c.Request().Context(), req.toInput())
	if err != nil {
		return fail(c, h.log, err, "Failed to create user")
	}

	metrics.UsersRegisteredTotal.Inc()
	return success(c, http.StatusCreated, "User created successfully", user)
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  envelope
// @Failure      422   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /auth/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return fail(c, h.log, withInputErrors(err, req.toInput()), "Could not create token.")
	}

	token, err := h.service.Authenticate(c.Request().Context(), req.toInput())
	metrics.LoginsTotal.WithLabelValues(resultOf(err)).Inc()
	if err != nil {
		return fail(c, h.log, err, "Could not create token.")
	}

	return c.JSON(http.StatusOK, tokenResponse{Success: true, Token: token})
}

// Logout revokes the token given in the body, or the bearer token when the
// body has none.
//
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      logoutRequest  false  "Token to revoke"
// @Success      200   {object}  envelope
// @Failure      422   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /auth/logout [post]
func (h *AccountHandler) Logout(c echo.Context) error {
	var req logoutRequest
	if err := bind(c, &req); err != nil {
		return fail(c, h.log, err, "Failed to log out user")
	}
	if req.Token == "" {
		req.Token = middleware.BearerToken(c.Request())
	}

	if err := h.service.Logout(c.Request().Context(), req.Token); err != nil {
		return fail(c, h.log, err, "Failed to log out user")
	}

	metrics.TokensRevokedTotal.Inc()
	return success(c, http.StatusOK, "User has been logged out", nil)
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  envelope
// @Failure      404  {object}  envelope
// @Failure      500  {object}  envelope
// @Router       /auth/me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.service.CurrentUser(c.Request().Context(), &identity)
	if err != nil {
		return fail(c, h.log, err, "Failed to retrieve user")
	}

	return c.JSON(http.StatusOK, userResponse{Success: true, User: user})
}
