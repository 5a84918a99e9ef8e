package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/maciej3031/todo-app/internal/errors"
	"github.com/maciej3031/todo-app/internal/model"
	"github.com/maciej3031/todo-app/internal/repository"
)

// QuestionResult is the tally view of one poll question.
type QuestionResult struct {
	ID         uint           `json:"id"`
	Text       string         `json:"question_text"`
	Choices    []model.Choice `json:"choices"`
	TotalVotes int            `json:"total_votes"`
}

// PollService records votes and free-text feedback.
type PollService interface {
	ListQuestions(ctx context.Context) ([]model.Question, error)
	Results(ctx context.Context) ([]QuestionResult, error)
	Vote(ctx context.Context, firstChoiceID, secondChoiceID uint) error
	SubmitOpinion(ctx context.Context, userID uint, text string) error
	SubmitBug(ctx context.Context, userID uint, text string) error
	SeedDefaultQuestions(ctx context.Context) error
}

// defaultQuestions are created on first run so the poll page is never empty.
var defaultQuestions = []model.Question{
	{
		Text: "How do you like the site?",
		Choices: []model.Choice{
			{Text: "Great"},
			{Text: "Good"},
			{Text: "Average"},
			{Text: "Poor"},
		},
	},
	{
		Text: "How often do you use the task list?",
		Choices: []model.Choice{
			{Text: "Every day"},
			{Text: "Few times a week"},
			{Text: "Rarely"},
			{Text: "First time here"},
		},
	},
}

type pollService struct {
	pollRepo repository.PollRepository
}

// NewPollService creates a new poll service.
func NewPollService(pollRepo repository.PollRepository) PollService {
	return &pollService{pollRepo: pollRepo}
}

// ListQuestions returns every poll question with its choices and tallies.
func (s *pollService) ListQuestions(ctx context.Context) ([]model.Question, error) {
	return s.pollRepo.ListQuestions(ctx)
}

// Results returns every question with its choices and the summed vote count.
func (s *pollService) Results(ctx context.Context) ([]QuestionResult, error) {
	questions, err := s.pollRepo.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	results := make([]QuestionResult, 0, len(questions))
	for _, question := range questions {
		total := 0
		for _, choice := range question.Choices {
			total += choice.Votes
		}
		results = append(results, QuestionResult{
			ID:         question.ID,
			Text:       question.Text,
			Choices:    question.Choices,
			TotalVotes: total,
		})
	}
	return results, nil
}

// Vote increments the counters of both selected choices in one transaction.
func (s *pollService) Vote(ctx context.Context, firstChoiceID, secondChoiceID uint) error {
	if firstChoiceID == 0 || secondChoiceID == 0 {
		return errors.ErrChoicesMissing
	}

	err := s.pollRepo.IncrementVotes(ctx, []uint{firstChoiceID, secondChoiceID})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrChoiceNotFound
		}
		return fmt.Errorf("increment votes: %w", err)
	}
	return nil
}

// SubmitOpinion stores free-text feedback for the user.
func (s *pollService) SubmitOpinion(ctx context.Context, userID uint, text string) error {
	if len(text) >= MaxTextLength {
		return errors.ErrOpinionTooLong
	}
	opinion := &model.Opinion{
		Text:    text,
		PubDate: time.Now(),
		UserID:  userID,
	}
	if err := s.pollRepo.CreateOpinion(ctx, opinion); err != nil {
		return fmt.Errorf("create opinion: %w", err)
	}
	return nil
}

// SeedDefaultQuestions inserts the default poll questions unless they
// already exist.
func (s *pollService) SeedDefaultQuestions(ctx context.Context) error {
	for i := range defaultQuestions {
		question := defaultQuestions[i]
		question.PubDate = time.Now()
		if err := s.pollRepo.EnsureQuestion(ctx, &question); err != nil {
			return fmt.Errorf("ensure question %q: %w", question.Text, err)
		}
	}
	return nil
}

// SubmitBug stores a bug report for the user.
func (s *pollService) SubmitBug(ctx context.Context, userID uint, text string) error {
	if len(text) >= MaxTextLength {
		return errors.ErrOpinionTooLong
	}
	opinion := &model.ErrorOpinion{
		Text:    text,
		PubDate: time.Now(),
		UserID:  userID,
	}
	if err := s.pollRepo.CreateErrorOpinion(ctx, opinion); err != nil {
		return fmt.Errorf("create error opinion: %w", err)
	}
	return nil
}
