package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Settings controls grading behavior of an assignment.
// Adaptive follow-ups copy the settings of their original by value.
type Settings struct {
	AllowRetake               bool    `json:"allow_retake" yaml:"allow_retake"`
	AllowQuestionRetry        bool    `json:"allow_question_retry" yaml:"allow_question_retry"`
	ConfettiThreshold         float64 `json:"confetti_threshold" yaml:"confetti_threshold" validate:"gte=0,lte=100"`
	AdaptiveReassignThreshold float64 `json:"adaptive_reassign_threshold" yaml:"adaptive_reassign_threshold" validate:"gte=0,lte=100"`
	AdaptiveLearningEnabled   bool    `json:"adaptive_learning_enabled" yaml:"adaptive_learning_enabled"`
}

// Value implements driver.Valuer.
func (s Settings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *Settings) Scan(src any) error {
	return scanJSON(src, s)
}

// Assignment is an ordered set of questions issued to students.
type Assignment struct {
	ID          string     `db:"id" json:"id" yaml:"id"`
	Title       string     `db:"title" json:"title" yaml:"title" validate:"required"`
	Type        string     `db:"type" json:"type" yaml:"type" validate:"required"`
	QuestionIDs StringList `db:"question_ids" json:"question_ids" yaml:"question_ids" validate:"min=1,dive,required"`
	Settings    Settings   `db:"settings" json:"settings" yaml:"settings"`
	DueDate     *time.Time `db:"due_date" json:"due_date,omitempty" yaml:"due_date,omitempty"`
	CreatedBy   string     `db:"created_by" json:"created_by" yaml:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at" yaml:"-"`
}

// HasQuestion reports whether questionID belongs to the assignment.
func (a Assignment) HasQuestion(questionID string) bool {
	for _, id := range a.QuestionIDs {
		if id == questionID {
			return true
		}
	}
	return false
}

// Status is the lifecycle state of a StudentAssignment.
type Status string

const (
	StatusAssigned   Status = "ASSIGNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusSubmitted  Status = "SUBMITTED"
	StatusGraded     Status = "GRADED"
)

// StudentAssignment links a student to an assignment and tracks its lifecycle.
// OriginalAssignmentID is set only on adaptive follow-ups and points at the
// original Assignment, not the original StudentAssignment.
type StudentAssignment struct {
	ID                   string     `db:"id" json:"id" yaml:"id"`
	StudentID            string     `db:"student_id" json:"student_id" yaml:"student_id"`
	AssignmentID         string     `db:"assignment_id" json:"assignment_id" yaml:"assignment_id"`
	Status               Status     `db:"status" json:"status" yaml:"status"`
	Score                float64    `db:"score" json:"score" yaml:"score"`
	Attempts             int        `db:"attempts" json:"attempts" yaml:"attempts"`
	IsAdaptive           bool       `db:"is_adaptive" json:"is_adaptive" yaml:"is_adaptive"`
	OriginalAssignmentID *string    `db:"original_assignment_id" json:"original_assignment_id,omitempty" yaml:"original_assignment_id,omitempty"`
	SubmittedAt          *time.Time `db:"submitted_at" json:"submitted_at,omitempty" yaml:"submitted_at,omitempty"`
	GradedAt             *time.Time `db:"graded_at" json:"graded_at,omitempty" yaml:"graded_at,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at" yaml:"-"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at" yaml:"-"`
}
