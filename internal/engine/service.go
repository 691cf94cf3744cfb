// Package engine orchestrates the adaptive learning engine: the student
// assignment lifecycle, grading, spaced repetition reviews, adaptive
// follow-ups and practice sessions.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/adaptlearn/internal/adaptive"
	"github.com/at-ishikawa/adaptlearn/internal/config"
	"github.com/at-ishikawa/adaptlearn/internal/metrics"
	"github.com/at-ishikawa/adaptlearn/internal/model"
	"github.com/at-ishikawa/adaptlearn/internal/practice"
	"github.com/at-ishikawa/adaptlearn/internal/random"
	"github.com/at-ishikawa/adaptlearn/internal/repository"
	"github.com/at-ishikawa/adaptlearn/internal/schedule"
)

// Repositories are the stores the engine works through.
type Repositories struct {
	Questions          repository.QuestionRepository
	Answers            repository.AnswerRepository
	Assignments        repository.AssignmentRepository
	StudentAssignments repository.StudentAssignmentRepository
	SchedulingRecords  repository.SchedulingRecordRepository
}

// Service is stateless apart from its collaborators and safe for concurrent use.
type Service struct {
	questions          repository.QuestionRepository
	answers            repository.AnswerRepository
	assignments        repository.AssignmentRepository
	studentAssignments repository.StudentAssignmentRepository

	scheduler *schedule.Scheduler
	policy    *adaptive.Policy
	practice  *practice.Generator

	correctQuality   int
	incorrectQuality int
	concurrency      int

	now     func() time.Time
	newID   func() string
	rng     *random.Source
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func WithRandom(rng *random.Source) Option {
	return func(s *Service) { s.rng = rng }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New wires the scheduler, the adaptive policy and the practice generator
// over repos, tuned by cfg.
func New(repos Repositories, cfg config.EngineConfig, opts ...Option) *Service {
	s := &Service{
		questions:          repos.Questions,
		answers:            repos.Answers,
		assignments:        repos.Assignments,
		studentAssignments: repos.StudentAssignments,
		correctQuality:     cfg.Grading.CorrectQuality,
		incorrectQuality:   cfg.Grading.IncorrectQuality,
		concurrency:        cfg.Concurrency,
		now:                time.Now,
		newID:              uuid.NewString,
		rng:                random.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	clock := s.now
	s.now = func() time.Time { return model.Timestamp(clock()) }
	if s.concurrency < 1 {
		s.concurrency = 1
	}

	s.scheduler = schedule.NewScheduler(repos.SchedulingRecords, repos.Questions,
		schedule.WithClock(s.now),
		schedule.WithRandom(s.rng),
		schedule.WithJitter(cfg.Scheduler.JitterMin, cfg.Scheduler.JitterMax),
		schedule.WithMetrics(s.metrics))
	s.policy = adaptive.NewPolicy(repos.Questions, repos.Assignments,
		adaptive.WithClock(s.now),
		adaptive.WithIDGenerator(s.newID),
		adaptive.WithDueDays(cfg.Adaptive.DueDays),
		adaptive.WithMaxSimilarQuestions(cfg.Adaptive.MaxSimilarQuestions))
	s.practice = practice.NewGenerator(repos.Questions, repos.Answers,
		practice.WithRandom(s.rng),
		practice.WithDefaultQuestionCount(cfg.Practice.DefaultQuestionCount),
		practice.WithMasteryThreshold(cfg.Practice.MasteryThreshold),
		practice.WithMetrics(s.metrics))
	return s
}

// CreateAssignment validates and stores a new assignment. Every question must exist.
func (s *Service) CreateAssignment(ctx context.Context, a *model.Assignment) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	found, err := s.questions.FindByIDs(ctx, a.QuestionIDs)
	if err != nil {
		return fmt.Errorf("find questions of assignment: %w", err)
	}
	if len(found) != len(uniqueIDs(a.QuestionIDs)) {
		return fmt.Errorf("assignment references unknown questions: %w", model.ErrInvalidInput)
	}

	if a.ID == "" {
		a.ID = s.newID()
	}
	a.CreatedAt = s.now()
	if err := s.assignments.Create(ctx, a); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// IssueAssignment assigns an existing assignment to a student.
func (s *Service) IssueAssignment(ctx context.Context, assignmentID, studentID string) (*model.StudentAssignment, error) {
	if studentID == "" {
		return nil, fmt.Errorf("student id is required: %w", model.ErrInvalidInput)
	}
	if _, err := s.assignments.FindByID(ctx, assignmentID); err != nil {
		return nil, err
	}

	now := s.now()
	sa := &model.StudentAssignment{
		ID:           s.newID(),
		StudentID:    studentID,
		AssignmentID: assignmentID,
		Status:       model.StatusAssigned,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.studentAssignments.Create(ctx, sa); err != nil {
		return nil, fmt.Errorf("issue assignment %s to %s: %w", assignmentID, studentID, err)
	}
	return sa, nil
}

// StudentAssignments lists the assignments issued to a student, oldest first.
func (s *Service) StudentAssignments(ctx context.Context, studentID string) ([]model.StudentAssignment, error) {
	list, err := s.studentAssignments.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list assignments of student %s: %w", studentID, err)
	}
	return list, nil
}

func uniqueIDs(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
