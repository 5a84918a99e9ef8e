package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maciej3031/todo-app/internal/errors"
	"github.com/maciej3031/todo-app/internal/service"
)

// AccountHandler handles profile and account lifecycle endpoints.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// ProfileRequest represents the settings form; every field is optional.
type ProfileRequest struct {
	Login     string `json:"login" form:"login"`
	Password  string `json:"password" form:"password"`
	Password2 string `json:"password2" form:"password2"`
	Email     string `json:"email" form:"email"`
}

// DeleteAccountRequest optionally carries the refresh token so the session
// can be invalidated together with the account.
type DeleteAccountRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /settings/profile [get]
func (h *AccountHandler) GetProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.accountService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, user)
}

// ChangeProfile godoc
// @Summary Change username, password or email
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileRequest true "Fields to change; empty fields are ignored"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /settings/profile [put]
func (h *AccountHandler) ChangeProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.accountService.ChangeProfile(c.Request().Context(), userID, service.ProfileChanges{
		Username: req.Login,
		Password: req.Password,
		Confirm:  req.Password2,
		Email:    req.Email,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Changes were saved",
		"user":    user,
	})
}

// DeleteAccount godoc
// @Summary Delete the account with all owned tasks and opinions
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeleteAccountRequest false "Optional refresh token to invalidate"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /account [delete]
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req DeleteAccountRequest
	_ = c.Bind(&req) // body is optional

	if err := h.accountService.DeleteAccount(c.Request().Context(), userID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if req.RefreshToken != "" {
		// Best effort: a stale refresh token no longer matters once the user
		// row is gone.
		_ = h.accountService.Logout(c.Request().Context(), req.RefreshToken)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Account was deleted permanently",
	})
}
