package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/maciej3031/todo-app/internal/model"
)

// TaskRepository defines task persistence operations. All reads and writes
// are scoped to the owning user.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]model.Task, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	SetExecuted(ctx context.Context, id, userID uint, executed bool) (int64, error)
	DeleteByIDs(ctx context.Context, ids []uint, userID uint) error
	FindByIDs(ctx context.Context, ids []uint) ([]model.Task, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByUser returns one page of the user's tasks ordered by publication
// date descending.
func (r *taskRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("pub_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// SetExecuted flips the executed flag on an owner-scoped task and reports
// how many rows matched.
func (r *taskRepository) SetExecuted(ctx context.Context, id, userID uint, executed bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("executed", executed)
	return res.RowsAffected, res.Error
}

func (r *taskRepository) DeleteByIDs(ctx context.Context, ids []uint, userID uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ? AND user_id = ?", ids, userID).
		Delete(&model.Task{}).Error
}

func (r *taskRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Task, error) {
	var tasks []model.Task
	if len(ids) == 0 {
		return tasks, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
