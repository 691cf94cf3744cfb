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

//go:generate mockgen -source=question.go -destination=../mocks/repository/mock_question.go -package=mock_repository

// QuestionRepository reads the question bank.
// Similarity is plain tag intersection, with results ordered by question id.
type QuestionRepository interface {
	FindByID(ctx context.Context, id string) (*model.Question, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Question, error)
	FindByTags(ctx context.Context, tags []string) ([]model.Question, error)
	FindAll(ctx context.Context) ([]model.Question, error)
	BatchCreate(ctx context.Context, questions []*model.Question) error
}

// DBQuestionRepository implements QuestionRepository using MySQL.
type DBQuestionRepository struct {
	db *sqlx.DB
}

// NewDBQuestionRepository creates a new DBQuestionRepository.
func NewDBQuestionRepository(db *sqlx.DB) *DBQuestionRepository {
	return &DBQuestionRepository{db: db}
}

type questionTag struct {
	QuestionID string `db:"question_id"`
	Tag        string `db:"tag"`
}

// FindByID returns the question with its tags.
func (r *DBQuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	var q model.Question
	if err := r.db.GetContext(ctx, &q, "SELECT * FROM questions WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("question", id)
		}
		return nil, fmt.Errorf("load question %s: %w", id, err)
	}
	questions := []model.Question{q}
	if err := r.loadTags(ctx, questions); err != nil {
		return nil, err
	}
	return &questions[0], nil
}

// FindByIDs returns the questions that exist among ids. Missing ids are skipped.
func (r *DBQuestionRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In("SELECT * FROM questions WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, fmt.Errorf("build questions query: %w", err)
	}
	var questions []model.Question
	if err := r.db.SelectContext(ctx, &questions, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if err := r.loadTags(ctx, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// FindByTags returns every question carrying at least one of tags.
func (r *DBQuestionRepository) FindByTags(ctx context.Context, tags []string) ([]model.Question, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		"SELECT DISTINCT q.* FROM questions q JOIN question_tags t ON t.question_id = q.id WHERE t.tag IN (?) ORDER BY q.id",
		tags)
	if err != nil {
		return nil, fmt.Errorf("build questions by tags query: %w", err)
	}
	var questions []model.Question
	if err := r.db.SelectContext(ctx, &questions, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load questions by tags: %w", err)
	}
	if err := r.loadTags(ctx, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// FindAll returns all questions.
func (r *DBQuestionRepository) FindAll(ctx context.Context) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.SelectContext(ctx, &questions, "SELECT * FROM questions ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load all questions: %w", err)
	}
	if err := r.loadTags(ctx, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// BatchCreate inserts questions and their tags in a single transaction.
func (r *DBQuestionRepository) BatchCreate(ctx context.Context, questions []*model.Question) error {
	if len(questions) == 0 {
		return nil
	}

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		query := database.BuildMultiRowInsert("questions", []string{"id", "type", "prompt", "answer_key"}, len(questions))
		var args []interface{}
		for _, q := range questions {
			args = append(args, q.ID, q.Type, q.Prompt, q.Key)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert questions: %w", err)
		}

		var tagArgs []interface{}
		var tagCount int
		for _, q := range questions {
			for _, tag := range q.Tags {
				tagArgs = append(tagArgs, q.ID, tag)
				tagCount++
			}
		}
		if tagCount > 0 {
			q := database.BuildMultiRowInsert("question_tags", []string{"question_id", "tag"}, tagCount)
			if _, err := tx.ExecContext(ctx, q, tagArgs...); err != nil {
				return fmt.Errorf("insert question tags: %w", err)
			}
		}
		return nil
	})
}

func (r *DBQuestionRepository) loadTags(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}

	ids := make([]string, len(questions))
	byID := make(map[string]*model.Question, len(questions))
	for i := range questions {
		ids[i] = questions[i].ID
		byID[questions[i].ID] = &questions[i]
	}

	query, args, err := sqlx.In("SELECT question_id, tag FROM question_tags WHERE question_id IN (?) ORDER BY question_id, tag", ids)
	if err != nil {
		return fmt.Errorf("build question tags query: %w", err)
	}
	var tags []questionTag
	if err := r.db.SelectContext(ctx, &tags, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load question tags: %w", err)
	}
	for _, t := range tags {
		q := byID[t.QuestionID]
		q.Tags = append(q.Tags, t.Tag)
	}
	return nil
}
