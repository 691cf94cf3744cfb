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

//go:generate mockgen -source=answer.go -destination=../mocks/repository/mock_answer.go -package=mock_repository

// AnswerRepository stores submitted answers.
// Answers are immutable except for the manual essay grade.
type AnswerRepository interface {
	FindByID(ctx context.Context, id string) (*model.Answer, error)
	FindByStudentID(ctx context.Context, studentID string) ([]model.Answer, error)
	FindIncorrectByStudentID(ctx context.Context, studentID string) ([]model.Answer, error)
	FindByStudentAssignmentID(ctx context.Context, studentAssignmentID string) ([]model.Answer, error)
	BatchCreate(ctx context.Context, answers []*model.Answer) error
	UpdateEssayGrade(ctx context.Context, id string, isCorrect bool, score float64, feedback string) error
}

// DBAnswerRepository implements AnswerRepository using MySQL.
type DBAnswerRepository struct {
	db *sqlx.DB
}

// NewDBAnswerRepository creates a new DBAnswerRepository.
func NewDBAnswerRepository(db *sqlx.DB) *DBAnswerRepository {
	return &DBAnswerRepository{db: db}
}

func (r *DBAnswerRepository) FindByID(ctx context.Context, id string) (*model.Answer, error) {
	var a model.Answer
	if err := r.db.GetContext(ctx, &a, "SELECT * FROM answers WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("answer", id)
		}
		return nil, fmt.Errorf("load answer %s: %w", id, err)
	}
	return &a, nil
}

// FindByStudentID returns the student's whole answer history, oldest first.
func (r *DBAnswerRepository) FindByStudentID(ctx context.Context, studentID string) ([]model.Answer, error) {
	var answers []model.Answer
	if err := r.db.SelectContext(ctx, &answers,
		"SELECT * FROM answers WHERE student_id = ? ORDER BY created_at, id", studentID); err != nil {
		return nil, fmt.Errorf("load answers of student %s: %w", studentID, err)
	}
	return answers, nil
}

// FindIncorrectByStudentID returns the graded-incorrect answers of the student, oldest first.
func (r *DBAnswerRepository) FindIncorrectByStudentID(ctx context.Context, studentID string) ([]model.Answer, error) {
	var answers []model.Answer
	if err := r.db.SelectContext(ctx, &answers,
		"SELECT * FROM answers WHERE student_id = ? AND is_correct = FALSE ORDER BY created_at, id", studentID); err != nil {
		return nil, fmt.Errorf("load incorrect answers of student %s: %w", studentID, err)
	}
	return answers, nil
}

// FindByStudentAssignmentID returns the answers of every attempt of a student assignment.
func (r *DBAnswerRepository) FindByStudentAssignmentID(ctx context.Context, studentAssignmentID string) ([]model.Answer, error) {
	var answers []model.Answer
	if err := r.db.SelectContext(ctx, &answers,
		"SELECT * FROM answers WHERE student_assignment_id = ? ORDER BY attempt_number, created_at, id", studentAssignmentID); err != nil {
		return nil, fmt.Errorf("load answers of student assignment %s: %w", studentAssignmentID, err)
	}
	return answers, nil
}

// BatchCreate inserts answers in a single transaction using a multi-row INSERT.
func (r *DBAnswerRepository) BatchCreate(ctx context.Context, answers []*model.Answer) error {
	if len(answers) == 0 {
		return nil
	}

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		return insertAnswers(ctx, tx, answers)
	})
}

func insertAnswers(ctx context.Context, ext sqlx.ExecerContext, answers []*model.Answer) error {
	if len(answers) == 0 {
		return nil
	}

	columns := []string{"id", "student_id", "question_id", "student_assignment_id", "attempt_number", "is_correct", "payload", "feedback", "essay_score", "created_at"}
	query := database.BuildMultiRowInsert("answers", columns, len(answers))

	var args []interface{}
	for _, a := range answers {
		args = append(args, a.ID, a.StudentID, a.QuestionID, a.StudentAssignmentID, a.AttemptNumber, a.IsCorrect, a.Payload, a.Feedback, a.EssayScore, a.CreatedAt)
	}
	if _, err := ext.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert answers: %w", err)
	}
	return nil
}

// UpdateEssayGrade records the manual grade of an essay answer.
func (r *DBAnswerRepository) UpdateEssayGrade(ctx context.Context, id string, isCorrect bool, score float64, feedback string) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE answers SET is_correct = ?, essay_score = ?, feedback = ? WHERE id = ?",
		isCorrect, score, feedback, id); err != nil {
		return fmt.Errorf("update essay grade of answer %s: %w", id, err)
	}
	return nil
}
