// Package adaptive decides when a graded assignment spawns a follow-up
// assignment and assembles that follow-up from the student's mistakes.
package adaptive

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/adaptlearn/internal/model"
	"github.com/at-ishikawa/adaptlearn/internal/repository"
)

const (
	TitlePrefix = "Adaptive: "

	defaultDueDays             = 7
	defaultMaxSimilarQuestions = 5
)

// Policy builds adaptive follow-up assignments.
type Policy struct {
	questions   repository.QuestionRepository
	assignments repository.AssignmentRepository
	dueDays     int
	maxSimilar  int
	now         func() time.Time
	newID       func() string
}

type Option func(*Policy)

func WithClock(now func() time.Time) Option {
	return func(p *Policy) { p.now = now }
}

// WithIDGenerator replaces uuid generation of new entity ids.
func WithIDGenerator(newID func() string) Option {
	return func(p *Policy) { p.newID = newID }
}

// WithDueDays sets how many days after creation the follow-up is due.
func WithDueDays(days int) Option {
	return func(p *Policy) { p.dueDays = days }
}

// WithMaxSimilarQuestions caps the tag-similar questions added to a follow-up.
func WithMaxSimilarQuestions(n int) Option {
	return func(p *Policy) { p.maxSimilar = n }
}

func NewPolicy(questions repository.QuestionRepository, assignments repository.AssignmentRepository, opts ...Option) *Policy {
	p := &Policy{
		questions:   questions,
		assignments: assignments,
		dueDays:     defaultDueDays,
		maxSimilar:  defaultMaxSimilarQuestions,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	clock := p.now
	p.now = func() time.Time { return model.Timestamp(clock()) }
	return p
}

// ShouldReassign reports whether a score warrants a follow-up.
// An adaptive student assignment never spawns another one.
func ShouldReassign(score float64, assignment *model.Assignment, sa *model.StudentAssignment) bool {
	return score < assignment.Settings.AdaptiveReassignThreshold && !sa.IsAdaptive
}

// Build creates and stores the follow-up assignment of original for the
// student of sa, from the graded answers of the attempt. It returns nil when
// no answer was graded incorrect.
// Questions whose lookup fails contribute no tags.
func (p *Policy) Build(ctx context.Context, original *model.Assignment, sa *model.StudentAssignment, answers []model.Answer) (*model.Assignment, *model.StudentAssignment, error) {
	if sa.IsAdaptive {
		return nil, nil, fmt.Errorf("student assignment %s is already adaptive: %w", sa.ID, model.ErrInvalidState)
	}

	var incorrect []string
	for _, a := range answers {
		if a.IsIncorrect() && !slices.Contains(incorrect, a.QuestionID) {
			incorrect = append(incorrect, a.QuestionID)
		}
	}
	if len(incorrect) == 0 {
		return nil, nil, nil
	}

	questionIDs := append(model.StringList{}, incorrect...)
	questionIDs = append(questionIDs, p.similarQuestions(ctx, original, incorrect)...)

	now := p.now()
	due := now.AddDate(0, 0, p.dueDays)
	followUp := &model.Assignment{
		ID:          p.newID(),
		Title:       TitlePrefix + original.Title,
		Type:        original.Type,
		QuestionIDs: questionIDs,
		Settings:    original.Settings,
		DueDate:     &due,
		CreatedBy:   original.CreatedBy,
		CreatedAt:   now,
	}
	originalID := original.ID
	followUpSA := &model.StudentAssignment{
		ID:                   p.newID(),
		StudentID:            sa.StudentID,
		AssignmentID:         followUp.ID,
		Status:               model.StatusAssigned,
		IsAdaptive:           true,
		OriginalAssignmentID: &originalID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := p.assignments.CreateWithStudentAssignment(ctx, followUp, followUpSA); err != nil {
		return nil, nil, fmt.Errorf("create adaptive assignment for %s: %w", sa.ID, err)
	}

	slog.Default().Info("created adaptive assignment",
		"student_id", sa.StudentID,
		"original_assignment_id", original.ID,
		"assignment_id", followUp.ID,
		"incorrect_questions", len(incorrect),
		"questions", len(questionIDs))
	return followUp, followUpSA, nil
}

// similarQuestions returns up to maxSimilar ids of questions sharing a tag
// with the incorrect ones, in query order, outside the original assignment.
func (p *Policy) similarQuestions(ctx context.Context, original *model.Assignment, incorrect []string) []string {
	var tags []string
	for _, id := range incorrect {
		q, err := p.questions.FindByID(ctx, id)
		if err != nil {
			slog.Default().Warn("skipping tags of question",
				"question_id", id,
				"error", err)
			continue
		}
		for _, tag := range q.Tags {
			if !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
	}
	if len(tags) == 0 || p.maxSimilar <= 0 {
		return nil
	}

	candidates, err := p.questions.FindByTags(ctx, tags)
	if err != nil {
		slog.Default().Warn("skipping similar questions",
			"tags", tags,
			"error", err)
		return nil
	}

	var similar []string
	for _, q := range candidates {
		if len(similar) == p.maxSimilar {
			break
		}
		if original.HasQuestion(q.ID) || slices.Contains(incorrect, q.ID) || slices.Contains(similar, q.ID) {
			continue
		}
		similar = append(similar, q.ID)
	}
	return similar
}
