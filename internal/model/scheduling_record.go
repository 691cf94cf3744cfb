package model

import "time"

// TimestampPrecision is the resolution of the stored DATETIME(6) columns.
const TimestampPrecision = time.Microsecond

// Timestamp returns t in UTC, truncated to what the store keeps.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(TimestampPrecision)
}

// SchedulingRecord is the SM-2 state of one student for one question.
type SchedulingRecord struct {
	StudentID      string     `db:"student_id" json:"student_id" yaml:"student_id"`
	QuestionID     string     `db:"question_id" json:"question_id" yaml:"question_id"`
	EaseFactor     float64    `db:"ease_factor" json:"ease_factor" yaml:"ease_factor"`
	IntervalDays   int        `db:"interval_days" json:"interval_days" yaml:"interval_days"`
	Repetitions    int        `db:"repetitions" json:"repetitions" yaml:"repetitions"`
	NextReviewDate time.Time  `db:"next_review_date" json:"next_review_date" yaml:"next_review_date"`
	LastReviewDate *time.Time `db:"last_review_date" json:"last_review_date,omitempty" yaml:"last_review_date,omitempty"`
}
