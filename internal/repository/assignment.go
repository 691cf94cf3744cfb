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

//go:generate mockgen -source=assignment.go -destination=../mocks/repository/mock_assignment.go -package=mock_repository

// AssignmentRepository stores assignments.
type AssignmentRepository interface {
	FindByID(ctx context.Context, id string) (*model.Assignment, error)
	Create(ctx context.Context, a *model.Assignment) error
	// CreateWithStudentAssignment stores an assignment and its first student
	// assignment atomically.
	CreateWithStudentAssignment(ctx context.Context, a *model.Assignment, sa *model.StudentAssignment) error
}

// DBAssignmentRepository implements AssignmentRepository using MySQL.
type DBAssignmentRepository struct {
	db *sqlx.DB
}

// NewDBAssignmentRepository creates a new DBAssignmentRepository.
func NewDBAssignmentRepository(db *sqlx.DB) *DBAssignmentRepository {
	return &DBAssignmentRepository{db: db}
}

func (r *DBAssignmentRepository) FindByID(ctx context.Context, id string) (*model.Assignment, error) {
	var a model.Assignment
	if err := r.db.GetContext(ctx, &a, "SELECT * FROM assignments WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("assignment", id)
		}
		return nil, fmt.Errorf("load assignment %s: %w", id, err)
	}
	return &a, nil
}

func (r *DBAssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	if err := insertAssignment(ctx, r.db, a); err != nil {
		return err
	}
	return nil
}

func (r *DBAssignmentRepository) CreateWithStudentAssignment(ctx context.Context, a *model.Assignment, sa *model.StudentAssignment) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := insertAssignment(ctx, tx, a); err != nil {
			return err
		}
		return insertStudentAssignment(ctx, tx, sa)
	})
}

func insertAssignment(ctx context.Context, ext sqlx.ExecerContext, a *model.Assignment) error {
	_, err := ext.ExecContext(ctx,
		"INSERT INTO assignments (id, title, type, question_ids, settings, due_date, created_by) VALUES (?, ?, ?, ?, ?, ?, ?)",
		a.ID, a.Title, a.Type, a.QuestionIDs, a.Settings, a.DueDate, a.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert assignment %s: %w", a.ID, err)
	}
	return nil
}
