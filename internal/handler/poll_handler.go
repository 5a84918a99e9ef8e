package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maciej3031/todo-app/internal/errors"
	"github.com/maciej3031/todo-app/internal/service"
)

// PollHandler handles the poll endpoints.
type PollHandler struct {
	pollService service.PollService
}

// NewPollHandler creates a new poll handler.
func NewPollHandler(pollService service.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// VoteRequest mirrors the legacy poll form: choice1 and choice3 select one
// answer per question, choice2 carries free-text feedback and choice4 a bug
// report.
type VoteRequest struct {
	Choice1 uint   `json:"choice1" form:"choice1"`
	Choice2 string `json:"choice2" form:"choice2"`
	Choice3 uint   `json:"choice3" form:"choice3"`
	Choice4 string `json:"choice4" form:"choice4"`
}

// Questions godoc
// @Summary List poll questions with choices and tallies
// @Tags poll
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Question
// @Failure 401 {object} errors.ErrorResponse
// @Router /poll [get]
func (h *PollHandler) Questions(c echo.Context) error {
	questions, err := h.pollService.ListQuestions(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, questions)
}

// Results godoc
// @Summary Show the poll results with vote tallies
// @Tags poll
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.QuestionResult
// @Failure 401 {object} errors.ErrorResponse
// @Router /poll/results [get]
func (h *PollHandler) Results(c echo.Context) error {
	results, err := h.pollService.Results(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, results)
}

// Vote godoc
// @Summary Vote in the poll and optionally leave feedback
// @Tags poll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VoteRequest true "Selected choices and optional texts"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /poll/vote [post]
func (h *PollHandler) Vote(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req VoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.pollService.Vote(ctx, req.Choice1, req.Choice3); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if req.Choice2 != "" {
		if err := h.pollService.SubmitOpinion(ctx, userID, req.Choice2); err != nil {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
	}
	if req.Choice4 != "" {
		if err := h.pollService.SubmitBug(ctx, userID, req.Choice4); err != nil {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
	}

	results, err := h.pollService.Results(ctx)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Thank you for your vote!",
		"results": results,
	})
}
