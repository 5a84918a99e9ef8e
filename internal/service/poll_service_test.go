package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/maciej3031/todo-app/internal/errors"
	"github.com/maciej3031/todo-app/internal/model"
)

func TestPollService_Vote(t *testing.T) {
	t.Run("both choices required", func(t *testing.T) {
		pollRepo := new(MockPollRepository)
		svc := NewPollService(pollRepo)

		assert.ErrorIs(t, svc.Vote(context.Background(), 0, 3), errors.ErrChoicesMissing)
		assert.ErrorIs(t, svc.Vote(context.Background(), 1, 0), errors.ErrChoicesMissing)
		assert.ErrorIs(t, svc.Vote(context.Background(), 0, 0), errors.ErrChoicesMissing)
		pollRepo.AssertNotCalled(t, "IncrementVotes", mock.Anything, mock.Anything)
	})

	t.Run("unknown choice", func(t *testing.T) {
		pollRepo := new(MockPollRepository)
		pollRepo.On("IncrementVotes", mock.Anything, []uint{1, 99}).Return(gorm.ErrRecordNotFound)
		svc := NewPollService(pollRepo)

		assert.ErrorIs(t, svc.Vote(context.Background(), 1, 99), errors.ErrChoiceNotFound)
	})

	t.Run("increments exactly the two selected counters", func(t *testing.T) {
		pollRepo := new(MockPollRepository)
		pollRepo.On("IncrementVotes", mock.Anything, []uint{1, 3}).Return(nil)
		svc := NewPollService(pollRepo)

		assert.NoError(t, svc.Vote(context.Background(), 1, 3))
		pollRepo.AssertExpectations(t)
	})
}

func TestPollService_SubmitOpinion(t *testing.T) {
	t.Run("text too long", func(t *testing.T) {
		svc := NewPollService(new(MockPollRepository))
		err := svc.SubmitOpinion(context.Background(), 7, strings.Repeat("x", 255))
		assert.ErrorIs(t, err, errors.ErrOpinionTooLong)
	})

	t.Run("stores the opinion with its author", func(t *testing.T) {
		pollRepo := new(MockPollRepository)
		pollRepo.On("CreateOpinion", mock.Anything, mock.MatchedBy(func(o *model.Opinion) bool {
			return o.Text == "nice app" && o.UserID == 7 && !o.PubDate.IsZero()
		})).Return(nil)
		svc := NewPollService(pollRepo)

		assert.NoError(t, svc.SubmitOpinion(context.Background(), 7, "nice app"))
		pollRepo.AssertExpectations(t)
	})
}

func TestPollService_SubmitBug(t *testing.T) {
	t.Run("text too long", func(t *testing.T) {
		svc := NewPollService(new(MockPollRepository))
		err := svc.SubmitBug(context.Background(), 7, strings.Repeat("x", 300))
		assert.ErrorIs(t, err, errors.ErrOpinionTooLong)
	})

	t.Run("stores the bug report", func(t *testing.T) {
		pollRepo := new(MockPollRepository)
		pollRepo.On("CreateErrorOpinion", mock.Anything, mock.MatchedBy(func(o *model.ErrorOpinion) bool {
			return o.Text == "erase button broken" && o.UserID == 7
		})).Return(nil)
		svc := NewPollService(pollRepo)

		assert.NoError(t, svc.SubmitBug(context.Background(), 7, "erase button broken"))
		pollRepo.AssertExpectations(t)
	})
}

func TestPollService_Results(t *testing.T) {
	pollRepo := new(MockPollRepository)
	pollRepo.On("ListQuestions", mock.Anything).Return([]model.Question{
		{ID: 1, Text: "How do you like the site?", Choices: []model.Choice{
			{ID: 1, Votes: 3}, {ID: 2, Votes: 2},
		}},
		{ID: 2, Text: "How often do you use the task list?", Choices: []model.Choice{
			{ID: 3, Votes: 1}, {ID: 4},
		}},
	}, nil)
	svc := NewPollService(pollRepo)

	results, err := svc.Results(context.Background())
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, 5, results[0].TotalVotes)
	assert.Equal(t, 1, results[1].TotalVotes)
	assert.Len(t, results[0].Choices, 2)
	assert.Equal(t, "How do you like the site?", results[0].Text)
}

func TestPollService_SeedDefaultQuestions(t *testing.T) {
	pollRepo := new(MockPollRepository)
	pollRepo.On("EnsureQuestion", mock.Anything, mock.AnythingOfType("*model.Question")).Return(nil).Times(len(defaultQuestions))
	svc := NewPollService(pollRepo)

	assert.NoError(t, svc.SeedDefaultQuestions(context.Background()))
	pollRepo.AssertExpectations(t)
}
