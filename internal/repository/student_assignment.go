package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/adaptlearn/internal/database"
	"github.com/at-ishikawa/adaptlearn/internal/model"
)

//go:generate mockgen -source=student_assignment.go -destination=../mocks/repository/mock_student_assignment.go -package=mock_repository

// StudentAssignmentRepository stores student assignments.
type StudentAssignmentRepository interface {
	FindByID(ctx context.Context, id string) (*model.StudentAssignment, error)
	FindByStudentID(ctx context.Context, studentID string) ([]model.StudentAssignment, error)
	Create(ctx context.Context, sa *model.StudentAssignment) error
	// UpdateStatus reads the student assignment under a lock, rejects it with
	// model.ErrInvalidState unless its status is from, applies fn and writes the
	// result, all in one atomic unit. It returns the updated student assignment.
	UpdateStatus(ctx context.Context, id string, from model.Status, fn func(sa *model.StudentAssignment) error) (*model.StudentAssignment, error)
	// Submit locks an IN_PROGRESS student assignment, applies fn and stores
	// both the updated student assignment and the answers fn returns in one
	// atomic unit. Nothing is written when fn or any write fails.
	Submit(ctx context.Context, id string, fn func(sa *model.StudentAssignment) ([]*model.Answer, error)) (*model.StudentAssignment, error)
}

// DBStudentAssignmentRepository implements StudentAssignmentRepository using MySQL.
type DBStudentAssignmentRepository struct {
	db *sqlx.DB
}

// NewDBStudentAssignmentRepository creates a new DBStudentAssignmentRepository.
func NewDBStudentAssignmentRepository(db *sqlx.DB) *DBStudentAssignmentRepository {
	return &DBStudentAssignmentRepository{db: db}
}

func (r *DBStudentAssignmentRepository) FindByID(ctx context.Context, id string) (*model.StudentAssignment, error) {
	var sa model.StudentAssignment
	if err := r.db.GetContext(ctx, &sa, "SELECT * FROM student_assignments WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("student assignment", id)
		}
		return nil, fmt.Errorf("load student assignment %s: %w", id, err)
	}
	return &sa, nil
}

func (r *DBStudentAssignmentRepository) FindByStudentID(ctx context.Context, studentID string) ([]model.StudentAssignment, error) {
	var list []model.StudentAssignment
	if err := r.db.SelectContext(ctx, &list,
		"SELECT * FROM student_assignments WHERE student_id = ? ORDER BY created_at, id", studentID); err != nil {
		return nil, fmt.Errorf("load student assignments of student %s: %w", studentID, err)
	}
	return list, nil
}

func (r *DBStudentAssignmentRepository) Create(ctx context.Context, sa *model.StudentAssignment) error {
	return insertStudentAssignment(ctx, r.db, sa)
}

func (r *DBStudentAssignmentRepository) UpdateStatus(ctx context.Context, id string, from model.Status, fn func(sa *model.StudentAssignment) error) (*model.StudentAssignment, error) {
	var updated *model.StudentAssignment
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		sa, err := updateLocked(ctx, tx, id, from, fn)
		if err != nil {
			return err
		}
		updated = sa
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *DBStudentAssignmentRepository) Submit(ctx context.Context, id string, fn func(sa *model.StudentAssignment) ([]*model.Answer, error)) (*model.StudentAssignment, error) {
	var submitted *model.StudentAssignment
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var answers []*model.Answer
		sa, err := updateLocked(ctx, tx, id, model.StatusInProgress, func(sa *model.StudentAssignment) error {
			var err error
			answers, err = fn(sa)
			return err
		})
		if err != nil {
			return err
		}
		if err := insertAnswers(ctx, tx, answers); err != nil {
			return fmt.Errorf("store answers of %s attempt %d: %w", id, sa.Attempts, err)
		}
		submitted = sa
		return nil
	})
	if err != nil {
		return nil, err
	}
	return submitted, nil
}

// updateLocked reads the row with FOR UPDATE, checks its status, applies fn and writes it back.
func updateLocked(ctx context.Context, tx *sqlx.Tx, id string, from model.Status, fn func(sa *model.StudentAssignment) error) (*model.StudentAssignment, error) {
	var sa model.StudentAssignment
	if err := tx.GetContext(ctx, &sa, "SELECT * FROM student_assignments WHERE id = ? FOR UPDATE", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("student assignment", id)
		}
		return nil, fmt.Errorf("lock student assignment %s: %w", id, err)
	}
	if sa.Status != from {
		return nil, fmt.Errorf("student assignment %s is %s, not %s: %w", id, sa.Status, from, model.ErrInvalidState)
	}
	if err := fn(&sa); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE student_assignments SET status = ?, score = ?, attempts = ?, submitted_at = ?, graded_at = ? WHERE id = ?",
		sa.Status, sa.Score, sa.Attempts, sa.SubmittedAt, sa.GradedAt, sa.ID); err != nil {
		return nil, fmt.Errorf("update student assignment %s: %w", id, err)
	}
	return &sa, nil
}

func insertStudentAssignment(ctx context.Context, ext sqlx.ExecerContext, sa *model.StudentAssignment) error {
	_, err := ext.ExecContext(ctx,
		"INSERT INTO student_assignments (id, student_id, assignment_id, status, score, attempts, is_adaptive, original_assignment_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		sa.ID, sa.StudentID, sa.AssignmentID, sa.Status, sa.Score, sa.Attempts, sa.IsAdaptive, sa.OriginalAssignmentID)
	if err != nil {
		return fmt.Errorf("insert student assignment %s: %w", sa.ID, err)
	}
	return nil
}
