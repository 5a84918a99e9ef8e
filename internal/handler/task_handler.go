package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/maciej3031/todo-app/internal/errors"
	"github.com/maciej3031/todo-app/internal/service"
)

// TaskHandler handles task list endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// AddTaskRequest represents the new task form.
type AddTaskRequest struct {
	Task string `json:"task" form:"task"`
	Date string `json:"date" form:"date"`
}

// EraseRequest lists task ids to delete.
type EraseRequest struct {
	Erase []uint `json:"erase" form:"erase"`
}

// PageSizeRequest represents the tasks-per-page form. The value arrives as a
// string so a non-numeric submission maps to the "Invalid number!" error.
type PageSizeRequest struct {
	TasksPerPage string `json:"tasks_per_page" form:"tasks_per_page"`
}

// List godoc
// @Summary List tasks for the authenticated user
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, starting at 1"
// @Success 200 {object} service.TaskPage
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
				Error: errors.ErrPageNotFound.Error(),
				Code:  "NOT_FOUND",
			})
		}
	}

	taskPage, err := h.taskService.List(c.Request().Context(), userID, page)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, taskPage)
}

// Add godoc
// @Summary Add a new task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddTaskRequest true "Task text and optional date"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Add(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req AddTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Add(c.Request().Context(), userID, req.Task, req.Date)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "New task added.",
		"task":    task,
	})
}

// Execute godoc
// @Summary Mark a task as executed
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/execute [post]
func (h *TaskHandler) Execute(c echo.Context) error {
	return h.setExecuted(c, true, "Task executed!")
}

// Undo godoc
// @Summary Mark a task as not executed
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/undo [post]
func (h *TaskHandler) Undo(c echo.Context) error {
	return h.setExecuted(c, false, "Task changed to not executed!")
}

func (h *TaskHandler) setExecuted(c echo.Context, executed bool, message string) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid task id",
			Code:  "VALIDATION_ERROR",
		})
	}

	if executed {
		err = h.taskService.MarkExecuted(c.Request().Context(), userID, uint(taskID))
	} else {
		err = h.taskService.MarkUndone(c.Request().Context(), userID, uint(taskID))
	}
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  message,
		"id":       taskID,
		"executed": executed,
	})
}

// Erase godoc
// @Summary Delete tasks by id
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EraseRequest true "Task ids to delete"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks/erase [post]
func (h *TaskHandler) Erase(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req EraseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.taskService.Erase(c.Request().Context(), userID, req.Erase); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Tasks deleted!",
	})
}

// SetPageSize godoc
// @Summary Change the tasks-per-page preference
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PageSizeRequest true "New page size"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /settings/page-size [put]
func (h *TaskHandler) SetPageSize(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req PageSizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	size, err := strconv.Atoi(req.TasksPerPage)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrInvalidNumber)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.taskService.SetPageSize(c.Request().Context(), userID, size); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("New value: %d tasks per page!", size),
	})
}
