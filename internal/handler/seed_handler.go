package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maciej3031/todo-app/internal/errors"
	"github.com/maciej3031/todo-app/internal/service"
)

// SeedHandler seeds development data.
type SeedHandler struct {
	pollService service.PollService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(pollService service.PollService) *SeedHandler {
	return &SeedHandler{pollService: pollService}
}

// SeedPoll godoc
// @Summary Seed the default poll questions
// @Tags seed
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed/poll [get]
func (h *SeedHandler) SeedPoll(c echo.Context) error {
	if err := h.pollService.SeedDefaultQuestions(c.Request().Context()); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "poll questions seeded",
	})
}
