package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/maciej3031/todo-app/internal/errors"
	"github.com/maciej3031/todo-app/internal/model"
	"github.com/maciej3031/todo-app/internal/repository"
)

const (
	// MaxTasksPerPage is the upper bound for the per-user page size preference.
	MaxTasksPerPage = 100
	// DefaultTasksPerPage is used when the configured default is missing or
	// not a positive number.
	DefaultTasksPerPage = 10
)

// TaskPage is one page of a user's task list.
type TaskPage struct {
	Tasks    []model.Task `json:"tasks"`
	Page     int          `json:"page"`
	Pages    int          `json:"pages"`
	PageSize int          `json:"page_size"`
	Total    int64        `json:"total"`
}

// TaskService handles the per-user to-do list.
type TaskService interface {
	Add(ctx context.Context, userID uint, text, date string) (*model.Task, error)
	List(ctx context.Context, userID uint, page int) (*TaskPage, error)
	MarkExecuted(ctx context.Context, userID, taskID uint) error
	MarkUndone(ctx context.Context, userID, taskID uint) error
	Erase(ctx context.Context, userID uint, taskIDs []uint) error
	SetPageSize(ctx context.Context, userID uint, size int) error
}

type taskService struct {
	taskRepo        repository.TaskRepository
	userRepo        repository.UserRepository
	validator       *FieldValidator
	defaultPageSize int
}

// NewTaskService creates a new task service. defaultPageSize is used for
// users without a stored preference; non-positive values fall back to
// DefaultTasksPerPage so pagination never divides by zero.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, defaultPageSize int) TaskService {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultTasksPerPage
	}
	return &taskService{
		taskRepo:        taskRepo,
		userRepo:        userRepo,
		validator:       NewFieldValidator(),
		defaultPageSize: defaultPageSize,
	}
}

// normalizeDate converts the datetime-local form value ("2011-08-12T20:17")
// into the space-separated representation the legacy schema stores, or an
// empty string when no date was given.
func normalizeDate(date string) string {
	if date == "" {
		return ""
	}
	return strings.ReplaceAll(date, "T", " ")
}

// Add stores a new, not yet executed task for the user.
func (s *taskService) Add(ctx context.Context, userID uint, text, date string) (*model.Task, error) {
	if !s.validator.ValidLength(text, MaxTextLength) {
		return nil, errors.ErrTaskTextInvalid
	}

	task := &model.Task{
		Text:     text,
		Executed: false,
		PubDate:  normalizeDate(date),
		UserID:   userID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// List returns the requested page of the user's tasks ordered by publication
// date descending. Pages past the last one yield ErrPageNotFound.
func (s *taskService) List(ctx context.Context, userID uint, page int) (*TaskPage, error) {
	if page < 1 {
		return nil, errors.ErrPageNotFound
	}

	pageSize := s.defaultPageSize
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNoSuchUser
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.TasksPerPage > 0 {
		pageSize = user.TasksPerPage
	}

	total, err := s.taskRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages == 0 {
		pages = 1 // an empty list still has a first page
	}
	if page > pages {
		return nil, errors.ErrPageNotFound
	}

	tasks, err := s.taskRepo.ListByUser(ctx, userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return &TaskPage{
		Tasks:    tasks,
		Page:     page,
		Pages:    pages,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

// MarkExecuted flips the task to executed. Marking an already executed task
// succeeds without touching the row.
func (s *taskService) MarkExecuted(ctx context.Context, userID, taskID uint) error {
	return s.setExecuted(ctx, userID, taskID, true)
}

// MarkUndone flips the task back to not executed.
func (s *taskService) MarkUndone(ctx context.Context, userID, taskID uint) error {
	return s.setExecuted(ctx, userID, taskID, false)
}

func (s *taskService) setExecuted(ctx context.Context, userID, taskID uint, executed bool) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrTaskNotFound
		}
		return fmt.Errorf("find task: %w", err)
	}
	if task.UserID != userID {
		return errors.ErrTaskNotOwned
	}
	if task.Executed == executed {
		return nil
	}

	if _, err := s.taskRepo.SetExecuted(ctx, taskID, userID, executed); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Erase deletes the listed tasks. Every listed task that exists must belong
// to the requesting user; ids that match nothing are ignored.
func (s *taskService) Erase(ctx context.Context, userID uint, taskIDs []uint) error {
	tasks, err := s.taskRepo.FindByIDs(ctx, taskIDs)
	if err != nil {
		return fmt.Errorf("find tasks: %w", err)
	}
	for _, task := range tasks {
		if task.UserID != userID {
			return errors.ErrTaskNotOwned
		}
	}

	if err := s.taskRepo.DeleteByIDs(ctx, taskIDs, userID); err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}
	return nil
}

// SetPageSize stores the user's page size preference, bounded to (0, 100].
func (s *taskService) SetPageSize(ctx context.Context, userID uint, size int) error {
	if size <= 0 {
		return errors.ErrInvalidNumber
	}
	if size > MaxTasksPerPage {
		return errors.ErrNumberTooBig
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNoSuchUser
		}
		return fmt.Errorf("find user: %w", err)
	}
	user.TasksPerPage = size
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
