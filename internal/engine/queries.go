package engine

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/adaptlearn/internal/model"
	"github.com/at-ishikawa/adaptlearn/internal/practice"
)

// ReviewQuestion applies a self-rated recall of quality 0..5.
func (s *Service) ReviewQuestion(ctx context.Context, studentID, questionID string, quality int) (*model.SchedulingRecord, error) {
	if err := model.ValidateQuality(quality); err != nil {
		return nil, err
	}
	if _, err := s.questions.FindByID(ctx, questionID); err != nil {
		return nil, err
	}
	return s.scheduler.Review(ctx, studentID, questionID, quality)
}

// DueQuestions returns the ids of the questions due for review.
func (s *Service) DueQuestions(ctx context.Context, studentID string, limit int, includeNew bool) ([]string, error) {
	if limit < 0 {
		return nil, fmt.Errorf("limit %d is negative: %w", limit, model.ErrInvalidInput)
	}
	return s.scheduler.DueQuestions(ctx, studentID, limit, includeNew)
}

func (s *Service) FrequentlyMissedQuestions(ctx context.Context, studentID string) ([]model.Question, error) {
	return s.practice.FrequentlyMissedQuestions(ctx, studentID)
}

// GeneratePracticeSession builds a practice session of up to questionCount
// questions, or the configured default when questionCount is zero.
func (s *Service) GeneratePracticeSession(ctx context.Context, studentID string, questionCount int) (*practice.Session, error) {
	if questionCount < 0 {
		return nil, fmt.Errorf("question count %d is negative: %w", questionCount, model.ErrInvalidInput)
	}
	return s.practice.GenerateSession(ctx, studentID, questionCount)
}
