package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/adaptlearn/internal/database"
	"github.com/at-ishikawa/adaptlearn/internal/model"
)

//go:generate mockgen -source=scheduling_record.go -destination=../mocks/repository/mock_scheduling_record.go -package=mock_repository

// SchedulingRecordRepository stores one SM-2 record per student and question.
type SchedulingRecordRepository interface {
	// Get returns nil without an error when the student has never reviewed the question.
	Get(ctx context.Context, studentID, questionID string) (*model.SchedulingRecord, error)
	Save(ctx context.Context, record *model.SchedulingRecord) error
	// GetDue returns records due at or before before, earliest first.
	GetDue(ctx context.Context, studentID string, before time.Time, limit int) ([]model.SchedulingRecord, error)
	GetStudentQuestionIDs(ctx context.Context, studentID string) ([]string, error)
	// Update serializes read-modify-write of one record. fn receives nil when
	// no record exists and returns the record to store.
	Update(ctx context.Context, studentID, questionID string, fn func(current *model.SchedulingRecord) (*model.SchedulingRecord, error)) (*model.SchedulingRecord, error)
}

// DBSchedulingRecordRepository implements SchedulingRecordRepository using MySQL.
type DBSchedulingRecordRepository struct {
	db *sqlx.DB
}

// NewDBSchedulingRecordRepository creates a new DBSchedulingRecordRepository.
func NewDBSchedulingRecordRepository(db *sqlx.DB) *DBSchedulingRecordRepository {
	return &DBSchedulingRecordRepository{db: db}
}

const selectSchedulingRecord = "SELECT * FROM scheduling_records WHERE student_id = ? AND question_id = ?"

func (r *DBSchedulingRecordRepository) Get(ctx context.Context, studentID, questionID string) (*model.SchedulingRecord, error) {
	var rec model.SchedulingRecord
	if err := r.db.GetContext(ctx, &rec, selectSchedulingRecord, studentID, questionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load scheduling record %s/%s: %w", studentID, questionID, err)
	}
	return &rec, nil
}

func (r *DBSchedulingRecordRepository) Save(ctx context.Context, record *model.SchedulingRecord) error {
	return upsertSchedulingRecord(ctx, r.db, record)
}

func (r *DBSchedulingRecordRepository) GetDue(ctx context.Context, studentID string, before time.Time, limit int) ([]model.SchedulingRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	var records []model.SchedulingRecord
	if err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM scheduling_records WHERE student_id = ? AND next_review_date <= ? ORDER BY next_review_date, question_id LIMIT ?",
		studentID, before, limit); err != nil {
		return nil, fmt.Errorf("load due scheduling records of student %s: %w", studentID, err)
	}
	return records, nil
}

func (r *DBSchedulingRecordRepository) GetStudentQuestionIDs(ctx context.Context, studentID string) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids,
		"SELECT question_id FROM scheduling_records WHERE student_id = ? ORDER BY question_id", studentID); err != nil {
		return nil, fmt.Errorf("load scheduled question ids of student %s: %w", studentID, err)
	}
	return ids, nil
}

func (r *DBSchedulingRecordRepository) Update(ctx context.Context, studentID, questionID string, fn func(current *model.SchedulingRecord) (*model.SchedulingRecord, error)) (*model.SchedulingRecord, error) {
	var saved *model.SchedulingRecord
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var current *model.SchedulingRecord
		var rec model.SchedulingRecord
		err := tx.GetContext(ctx, &rec, selectSchedulingRecord+" FOR UPDATE", studentID, questionID)
		switch {
		case err == nil:
			current = &rec
		case errors.Is(err, sql.ErrNoRows):
		default:
			return fmt.Errorf("lock scheduling record %s/%s: %w", studentID, questionID, err)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if err := upsertSchedulingRecord(ctx, tx, next); err != nil {
			return err
		}
		saved = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func upsertSchedulingRecord(ctx context.Context, ext sqlx.ExecerContext, rec *model.SchedulingRecord) error {
	_, err := ext.ExecContext(ctx,
		"INSERT INTO scheduling_records (student_id, question_id, ease_factor, interval_days, repetitions, next_review_date, last_review_date) VALUES (?, ?, ?, ?, ?, ?, ?) "+
			"ON DUPLICATE KEY UPDATE ease_factor = VALUES(ease_factor), interval_days = VALUES(interval_days), repetitions = VALUES(repetitions), "+
			"next_review_date = VALUES(next_review_date), last_review_date = VALUES(last_review_date)",
		rec.StudentID, rec.QuestionID, rec.EaseFactor, rec.IntervalDays, rec.Repetitions, rec.NextReviewDate, rec.LastReviewDate)
	if err != nil {
		return fmt.Errorf("save scheduling record %s/%s: %w", rec.StudentID, rec.QuestionID, err)
	}
	return nil
}
