package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/adaptlearn/internal/model"
)

var questionColumns = []string{"id", "type", "prompt", "answer_key", "created_at", "updated_at"}

func TestDBQuestionRepository_FindByID(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		setupMock  func(mock sqlmock.Sqlmock)
		want       *model.Question
		wantErrIs  error
		wantAnyErr bool
	}{
		{
			name: "returns question with tags",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM questions WHERE id = \\?").
					WithArgs("q1").
					WillReturnRows(sqlmock.NewRows(questionColumns).
						AddRow("q1", "multiple_choice", "2+2?", []byte(`{"options":[{"id":"a","text":"4","is_correct":true}]}`), now, now))
				mock.ExpectQuery("SELECT question_id, tag FROM question_tags WHERE question_id IN \\(\\?\\) ORDER BY question_id, tag").
					WithArgs("q1").
					WillReturnRows(sqlmock.NewRows([]string{"question_id", "tag"}).
						AddRow("q1", "algebra").
						AddRow("q1", "arithmetic"))
			},
			want: &model.Question{
				ID:     "q1",
				Type:   model.QuestionTypeMultipleChoice,
				Prompt: "2+2?",
				Tags:   []string{"algebra", "arithmetic"},
				Key: model.AnswerKey{
					Options: []model.Option{{ID: "a", Text: "4", IsCorrect: true}},
				},
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		{
			name: "missing question is not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM questions WHERE id = \\?").
					WithArgs("q1").
					WillReturnRows(sqlmock.NewRows(questionColumns))
			},
			wantErrIs: model.ErrNotFound,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM questions WHERE id = \\?").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBQuestionRepository(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			got, err := repo.FindByID(context.Background(), "q1")
			switch {
			case tt.wantErrIs != nil:
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			case tt.wantAnyErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, model.ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBQuestionRepository_FindByTags(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		tags      []string
		setupMock func(mock sqlmock.Sqlmock)
		wantIDs   []string
		wantErr   bool
	}{
		{
			name: "returns distinct questions sharing any tag",
			tags: []string{"algebra", "geometry"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT DISTINCT q\\.\\* FROM questions q JOIN question_tags t ON t\\.question_id = q\\.id WHERE t\\.tag IN \\(\\?, \\?\\) ORDER BY q\\.id").
					WithArgs("algebra", "geometry").
					WillReturnRows(sqlmock.NewRows(questionColumns).
						AddRow("q1", "true_false", "x=1?", []byte(`{"correct_bool":true}`), now, now).
						AddRow("q2", "short_answer", "area?", []byte(`{"accepted_answers":["pi r^2"]}`), now, now))
				mock.ExpectQuery("SELECT question_id, tag FROM question_tags WHERE question_id IN \\(\\?, \\?\\)").
					WithArgs("q1", "q2").
					WillReturnRows(sqlmock.NewRows([]string{"question_id", "tag"}).
						AddRow("q1", "algebra").
						AddRow("q2", "geometry"))
			},
			wantIDs: []string{"q1", "q2"},
		},
		{
			name:      "no tags returns nothing without querying",
			tags:      nil,
			setupMock: func(mock sqlmock.Sqlmock) {},
			wantIDs:   nil,
		},
		{
			name: "db error",
			tags: []string{"algebra"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT DISTINCT q\\.\\*").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBQuestionRepository(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			got, err := repo.FindByTags(context.Background(), tt.tags)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			var ids []string
			for _, q := range got {
				ids = append(ids, q.ID)
				assert.NotEmpty(t, q.Tags)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBQuestionRepository_FindAll(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT \\* FROM questions ORDER BY id").
		WillReturnRows(sqlmock.NewRows(questionColumns).
			AddRow("q1", "essay", "Explain.", []byte(`{}`), now, now))
	mock.ExpectQuery("SELECT question_id, tag FROM question_tags").
		WithArgs("q1").
		WillReturnRows(sqlmock.NewRows([]string{"question_id", "tag"}))

	repo := NewDBQuestionRepository(sqlx.NewDb(db, "mysql"))
	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.QuestionTypeEssay, got[0].Type)
	assert.Empty(t, got[0].Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBQuestionRepository_BatchCreate(t *testing.T) {
	tests := []struct {
		name      string
		questions []*model.Question
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "inserts questions and tags",
			questions: []*model.Question{
				{ID: "q1", Type: model.QuestionTypeEssay, Prompt: "Explain.", Tags: []string{"history"}},
				{ID: "q2", Type: model.QuestionTypeShortAnswer, Prompt: "Capital?", Tags: []string{"geo", "europe"}},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO questions \\(id, type, prompt, answer_key\\) VALUES \\(\\?, \\?, \\?, \\?\\), \\(\\?, \\?, \\?, \\?\\)").
					WithArgs("q1", "essay", "Explain.", sqlmock.AnyArg(), "q2", "short_answer", "Capital?", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec("INSERT INTO question_tags \\(question_id, tag\\) VALUES \\(\\?, \\?\\), \\(\\?, \\?\\), \\(\\?, \\?\\)").
					WithArgs("q1", "history", "q2", "geo", "q2", "europe").
					WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectCommit()
			},
		},
		{
			name:      "empty slice returns nil",
			questions: nil,
			setupMock: func(mock sqlmock.Sqlmock) {},
		},
		{
			name: "insert error rolls back",
			questions: []*model.Question{
				{ID: "q1", Type: model.QuestionTypeEssay, Prompt: "Explain."},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO questions").
					WillReturnError(fmt.Errorf("duplicate entry"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBQuestionRepository(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			err = repo.BatchCreate(context.Background(), tt.questions)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
