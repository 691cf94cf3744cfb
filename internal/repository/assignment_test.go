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

func TestDBAssignmentRepository_FindByID(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{"id", "title", "type", "question_ids", "settings", "due_date", "created_by", "created_at"}

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *model.Assignment
		wantErrIs error
	}{
		{
			name: "decodes question ids and settings",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM assignments WHERE id = \\?").
					WithArgs("as1").
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow("as1", "Fractions", "quiz", []byte(`["q1","q2"]`),
							[]byte(`{"allow_retake":true,"adaptive_reassign_threshold":80,"adaptive_learning_enabled":true}`),
							nil, "teacher1", now))
			},
			want: &model.Assignment{
				ID:          "as1",
				Title:       "Fractions",
				Type:        "quiz",
				QuestionIDs: model.StringList{"q1", "q2"},
				Settings: model.Settings{
					AllowRetake:               true,
					AdaptiveReassignThreshold: 80,
					AdaptiveLearningEnabled:   true,
				},
				CreatedBy: "teacher1",
				CreatedAt: now,
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM assignments WHERE id = \\?").
					WithArgs("as1").
					WillReturnRows(sqlmock.NewRows(columns))
			},
			wantErrIs: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBAssignmentRepository(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			got, err := repo.FindByID(context.Background(), "as1")
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBAssignmentRepository_CreateWithStudentAssignment(t *testing.T) {
	due := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	original := "as1"
	assignment := &model.Assignment{
		ID:          "as2",
		Title:       "Adaptive: Fractions",
		Type:        "quiz",
		QuestionIDs: model.StringList{"q1"},
		DueDate:     &due,
		CreatedBy:   "teacher1",
	}
	sa := &model.StudentAssignment{
		ID:                   "sa2",
		StudentID:            "s1",
		AssignmentID:         "as2",
		Status:               model.StatusAssigned,
		IsAdaptive:           true,
		OriginalAssignmentID: &original,
	}

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "inserts both rows in one transaction",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO assignments \\(id, title, type, question_ids, settings, due_date, created_by\\)").
					WithArgs("as2", "Adaptive: Fractions", "quiz", sqlmock.AnyArg(), sqlmock.AnyArg(), due, "teacher1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO student_assignments \\(id, student_id, assignment_id, status, score, attempts, is_adaptive, original_assignment_id\\)").
					WithArgs("sa2", "s1", "as2", "ASSIGNED", 0.0, 0, true, "as1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "student assignment failure rolls back the assignment",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO assignments").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO student_assignments").
					WillReturnError(fmt.Errorf("foreign key violation"))
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

			repo := NewDBAssignmentRepository(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			err = repo.CreateWithStudentAssignment(context.Background(), assignment, sa)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
