// Package practice assembles interleaved practice sessions from a student's
// answer history.
package practice

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/at-ishikawa/adaptlearn/internal/metrics"
	"github.com/at-ishikawa/adaptlearn/internal/model"
	"github.com/at-ishikawa/adaptlearn/internal/random"
	"github.com/at-ishikawa/adaptlearn/internal/repository"
)

const (
	DefaultQuestionCount    = 10
	DefaultMasteryThreshold = 3
)

type Generator struct {
	questions        repository.QuestionRepository
	answers          repository.AnswerRepository
	rng              *random.Source
	defaultCount     int
	masteryThreshold int
	metrics          *metrics.Metrics
}

type Option func(*Generator)

func WithRandom(rng *random.Source) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithDefaultQuestionCount sets the session size used when none is requested.
func WithDefaultQuestionCount(n int) Option {
	return func(g *Generator) { g.defaultCount = n }
}

// WithMasteryThreshold sets how many correct answers make a question mastered.
func WithMasteryThreshold(n int) Option {
	return func(g *Generator) { g.masteryThreshold = n }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

func NewGenerator(questions repository.QuestionRepository, answers repository.AnswerRepository, opts ...Option) *Generator {
	g := &Generator{
		questions:        questions,
		answers:          answers,
		rng:              random.New(),
		defaultCount:     DefaultQuestionCount,
		masteryThreshold: DefaultMasteryThreshold,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Session is a generated practice session.
// Questions follow the order of QuestionIDs.
type Session struct {
	StudentID   string           `json:"student_id"`
	QuestionIDs []string         `json:"question_ids"`
	Questions   []model.Question `json:"questions"`
}

// FrequentlyMissedQuestions returns the questions the student answered
// incorrectly, most missed first. Ties keep the order of the first miss.
func (g *Generator) FrequentlyMissedQuestions(ctx context.Context, studentID string) ([]model.Question, error) {
	ids, err := g.frequentlyMissedIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return g.resolve(ctx, ids)
}

func (g *Generator) frequentlyMissedIDs(ctx context.Context, studentID string) ([]string, error) {
	incorrect, err := g.answers.FindIncorrectByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("find incorrect answers of student %s: %w", studentID, err)
	}

	misses := make(map[string]int)
	var ids []string
	for _, a := range incorrect {
		if _, ok := misses[a.QuestionID]; !ok {
			ids = append(ids, a.QuestionID)
		}
		misses[a.QuestionID]++
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return misses[ids[i]] > misses[ids[j]]
	})
	return ids, nil
}

// resolve loads questions in the order of ids, skipping ones that no longer exist.
func (g *Generator) resolve(ctx context.Context, ids []string) ([]model.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := g.questions.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	byID := make(map[string]model.Question, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}

	questions := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			slog.Default().Warn("skipping missing question", "question_id", id)
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// GeneratePracticeQuiz returns up to questionCount question ids in random
// order. Every missed question is a candidate regardless of mastery; related
// questions sharing a tag with them fill the rest unless already mastered.
// A questionCount of zero or less uses the default count.
func (g *Generator) GeneratePracticeQuiz(ctx context.Context, studentID string, questionCount int) ([]string, error) {
	if questionCount <= 0 {
		questionCount = g.defaultCount
	}

	missed, err := g.FrequentlyMissedQuestions(ctx, studentID)
	if err != nil {
		return nil, err
	}
	related := g.relatedQuestions(ctx, missed)

	history, err := g.answers.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("find answers of student %s: %w", studentID, err)
	}
	correct := make(map[string]int)
	for _, a := range history {
		if a.IsGradedCorrect() {
			correct[a.QuestionID]++
		}
	}

	selected := make([]string, 0, len(missed))
	for _, q := range missed {
		selected = append(selected, q.ID)
	}
	var remaining []string
	for _, q := range related {
		if correct[q.ID] >= g.masteryThreshold {
			continue
		}
		if slices.Contains(selected, q.ID) || slices.Contains(remaining, q.ID) {
			continue
		}
		remaining = append(remaining, q.ID)
	}

	g.rng.ShuffleStrings(remaining)
	for _, id := range remaining {
		if len(selected) >= questionCount {
			break
		}
		selected = append(selected, id)
	}

	g.rng.ShuffleStrings(selected)
	if len(selected) > questionCount {
		selected = selected[:questionCount]
	}

	g.metrics.PracticeSessionGenerated()
	slog.Default().Debug("generated practice quiz",
		"student_id", studentID,
		"missed", len(missed),
		"related", len(remaining),
		"questions", len(selected))
	return selected, nil
}

func (g *Generator) relatedQuestions(ctx context.Context, missed []model.Question) []model.Question {
	var tags []string
	for _, q := range missed {
		for _, tag := range q.Tags {
			if !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
	}
	if len(tags) == 0 {
		return nil
	}

	related, err := g.questions.FindByTags(ctx, tags)
	if err != nil {
		slog.Default().Warn("practice without related questions",
			"tags", tags,
			"error", err)
		return nil
	}
	return related
}

// GenerateSession generates a practice quiz and resolves its questions.
func (g *Generator) GenerateSession(ctx context.Context, studentID string, questionCount int) (*Session, error) {
	ids, err := g.GeneratePracticeQuiz(ctx, studentID, questionCount)
	if err != nil {
		return nil, err
	}
	questions, err := g.resolve(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &Session{
		StudentID:   studentID,
		QuestionIDs: ids,
		Questions:   questions,
	}, nil
}
