// Package schedule implements SM-2 spaced repetition over per-student,
// per-question scheduling records.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/at-ishikawa/adaptlearn/internal/metrics"
	"github.com/at-ishikawa/adaptlearn/internal/model"
	"github.com/at-ishikawa/adaptlearn/internal/random"
	"github.com/at-ishikawa/adaptlearn/internal/repository"
)

// Scheduler owns the scheduling records of every (student, question) pair.
type Scheduler struct {
	records   repository.SchedulingRecordRepository
	questions repository.QuestionRepository
	rng       *random.Source
	jitterMin float64
	jitterMax float64
	now       func() time.Time
	metrics   *metrics.Metrics
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithRandom replaces the random source used for jitter and back-fill sampling.
func WithRandom(rng *random.Source) Option {
	return func(s *Scheduler) { s.rng = rng }
}

// WithJitter sets the bounds of the interval multiplier.
func WithJitter(min, max float64) Option {
	return func(s *Scheduler) { s.jitterMin, s.jitterMax = min, max }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

// NewScheduler creates a Scheduler with a 0.95..1.05 jitter.
func NewScheduler(records repository.SchedulingRecordRepository, questions repository.QuestionRepository, opts ...Option) *Scheduler {
	s := &Scheduler{
		records:   records,
		questions: questions,
		rng:       random.New(),
		jitterMin: 0.95,
		jitterMax: 1.05,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	clock := s.now
	s.now = func() time.Time { return model.Timestamp(clock()) }
	return s
}

// Initialize creates a fresh record, overwriting any existing one.
func (s *Scheduler) Initialize(ctx context.Context, studentID, questionID string) (*model.SchedulingRecord, error) {
	rec := s.newRecord(studentID, questionID)
	if err := s.records.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("initialize scheduling record: %w", err)
	}
	s.metrics.ReviewRecorded(metrics.OutcomeInitialized)
	return rec, nil
}

func (s *Scheduler) newRecord(studentID, questionID string) *model.SchedulingRecord {
	return &model.SchedulingRecord{
		StudentID:      studentID,
		QuestionID:     questionID,
		EaseFactor:     DefaultEaseFactor,
		IntervalDays:   1,
		Repetitions:    0,
		NextReviewDate: s.now().AddDate(0, 0, 1),
	}
}

// Review applies one recall of quality 0..5 to the record of the pair.
// Quality must be validated by the caller.
// The first review of a pair only initializes the record; its quality is discarded.
func (s *Scheduler) Review(ctx context.Context, studentID, questionID string, quality int) (*model.SchedulingRecord, error) {
	outcome := metrics.OutcomeRecall
	rec, err := s.records.Update(ctx, studentID, questionID, func(cur *model.SchedulingRecord) (*model.SchedulingRecord, error) {
		if cur == nil {
			outcome = metrics.OutcomeInitialized
			return s.newRecord(studentID, questionID), nil
		}
		if IsLapse(quality) {
			outcome = metrics.OutcomeLapse
		} else {
			outcome = metrics.OutcomeRecall
		}
		return s.apply(*cur, quality), nil
	})
	if err != nil {
		return nil, fmt.Errorf("review question %s for student %s: %w", questionID, studentID, err)
	}

	s.metrics.ReviewRecorded(outcome)
	slog.Default().Debug("reviewed question",
		"student_id", studentID,
		"question_id", questionID,
		"quality", quality,
		"outcome", outcome,
		"interval_days", rec.IntervalDays,
		"ease_factor", rec.EaseFactor)
	return rec, nil
}

func (s *Scheduler) apply(rec model.SchedulingRecord, quality int) *model.SchedulingRecord {
	now := s.now()
	rec.Repetitions++
	rec.EaseFactor = UpdateEaseFactor(rec.EaseFactor, quality)
	rec.IntervalDays, rec.Repetitions = NextInterval(rec.IntervalDays, rec.EaseFactor, quality, rec.Repetitions)
	rec.IntervalDays = s.jitter(rec.IntervalDays)
	rec.NextReviewDate = now.AddDate(0, 0, rec.IntervalDays)
	rec.LastReviewDate = &now
	return &rec
}

// jitter scales interval by a uniform factor and keeps it at one day or more.
func (s *Scheduler) jitter(interval int) int {
	jittered := int(math.Round(float64(interval) * s.rng.Uniform(s.jitterMin, s.jitterMax)))
	return max(jittered, 1)
}

// DueQuestions returns the ids of questions due for the student, earliest first,
// capped at limit. With includeNew, the remainder up to limit is back-filled
// with randomly sampled questions the student has never reviewed.
func (s *Scheduler) DueQuestions(ctx context.Context, studentID string, limit int, includeNew bool) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}

	due, err := s.records.GetDue(ctx, studentID, s.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("get due questions of student %s: %w", studentID, err)
	}
	ids := make([]string, 0, limit)
	for _, rec := range due {
		ids = append(ids, rec.QuestionID)
	}
	if !includeNew || len(ids) >= limit {
		return ids, nil
	}

	seen, err := s.records.GetStudentQuestionIDs(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get scheduled questions of student %s: %w", studentID, err)
	}
	all, err := s.questions.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find candidate questions: %w", err)
	}

	scheduled := make(map[string]bool, len(seen)+len(ids))
	for _, id := range seen {
		scheduled[id] = true
	}
	var unseen []string
	for _, q := range all {
		if !scheduled[q.ID] {
			unseen = append(unseen, q.ID)
		}
	}
	s.rng.ShuffleStrings(unseen)
	remaining := limit - len(ids)
	if len(unseen) > remaining {
		unseen = unseen[:remaining]
	}
	return append(ids, unseen...), nil
}
