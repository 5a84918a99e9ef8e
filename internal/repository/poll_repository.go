package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/maciej3031/todo-app/internal/model"
)

// PollRepository defines poll persistence operations.
type PollRepository interface {
	ListQuestions(ctx context.Context) ([]model.Question, error)
	// IncrementVotes bumps every listed choice counter by one inside a single
	// transaction so concurrent voters never lose updates.
	IncrementVotes(ctx context.Context, choiceIDs []uint) error
	CreateOpinion(ctx context.Context, opinion *model.Opinion) error
	CreateErrorOpinion(ctx context.Context, opinion *model.ErrorOpinion) error
	// EnsureQuestion creates the question with its choices unless a question
	// with the same text already exists.
	EnsureQuestion(ctx context.Context, question *model.Question) error
}

type pollRepository struct {
	db *gorm.DB
}

// NewPollRepository builds a GORM-backed repository.
func NewPollRepository(db *gorm.DB) PollRepository {
	return &pollRepository{db: db}
}

func (r *pollRepository) ListQuestions(ctx context.Context) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.WithContext(ctx).Preload("Choices").Order("id").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *pollRepository) IncrementVotes(ctx context.Context, choiceIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range choiceIDs {
			res := tx.Model(&model.Choice{}).
				Where("id = ?", id).
				Update("votes", gorm.Expr("votes + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

func (r *pollRepository) EnsureQuestion(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).
		Where("text = ?", question.Text).
		FirstOrCreate(question).Error
}

func (r *pollRepository) CreateOpinion(ctx context.Context, opinion *model.Opinion) error {
	return r.db.WithContext(ctx).Create(opinion).Error
}

func (r *pollRepository) CreateErrorOpinion(ctx context.Context, opinion *model.ErrorOpinion) error {
	return r.db.WithContext(ctx).Create(opinion).Error
}
