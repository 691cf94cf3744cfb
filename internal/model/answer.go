package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// AnswerPayload is the type-specific part of a submitted answer.
type AnswerPayload struct {
	SelectedOptionID string      `json:"selected_option_id,omitempty" yaml:"selected_option_id,omitempty"`
	BoolAnswer       *bool       `json:"bool_answer,omitempty" yaml:"bool_answer,omitempty"`
	TextAnswer       string      `json:"text_answer,omitempty" yaml:"text_answer,omitempty"`
	Matches          []MatchPair `json:"matches,omitempty" yaml:"matches,omitempty"`
}

// Value implements driver.Valuer.
func (p AnswerPayload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner.
func (p *AnswerPayload) Scan(src any) error {
	return scanJSON(src, p)
}

// Answer is one submitted answer to one question.
// IsCorrect is nil for essays awaiting manual grading.
type Answer struct {
	ID                  string        `db:"id" json:"id" yaml:"id"`
	StudentID           string        `db:"student_id" json:"student_id" yaml:"student_id"`
	QuestionID          string        `db:"question_id" json:"question_id" yaml:"question_id"`
	StudentAssignmentID string        `db:"student_assignment_id" json:"student_assignment_id" yaml:"student_assignment_id"`
	AttemptNumber       int           `db:"attempt_number" json:"attempt_number" yaml:"attempt_number"`
	IsCorrect           *bool         `db:"is_correct" json:"is_correct,omitempty" yaml:"is_correct,omitempty"`
	Payload             AnswerPayload `db:"payload" json:"payload" yaml:"payload"`
	Feedback            string        `db:"feedback" json:"feedback,omitempty" yaml:"feedback,omitempty"`
	EssayScore          *float64      `db:"essay_score" json:"essay_score,omitempty" yaml:"essay_score,omitempty"`
	CreatedAt           time.Time     `db:"created_at" json:"created_at" yaml:"created_at"`
}

// IsIncorrect reports whether the answer was graded and found wrong.
func (a Answer) IsIncorrect() bool {
	return a.IsCorrect != nil && !*a.IsCorrect
}

// IsGradedCorrect reports whether the answer was graded and found right.
func (a Answer) IsGradedCorrect() bool {
	return a.IsCorrect != nil && *a.IsCorrect
}
