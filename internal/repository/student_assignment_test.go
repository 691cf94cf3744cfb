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

var studentAssignmentColumns = []string{"id", "student_id", "assignment_id", "status", "score", "attempts", "is_adaptive", "original_assignment_id", "submitted_at", "graded_at", "created_at", "updated_at"}

func TestDBStudentAssignmentRepository_UpdateStatus(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	lockedRow := func(status string) *sqlmock.Rows {
		return sqlmock.NewRows(studentAssignmentColumns).
			AddRow("sa1", "s1", "as1", status, 0.0, 0, false, nil, nil, nil, now, now)
	}

	tests := []struct {
		name      string
		from      model.Status
		fn        func(sa *model.StudentAssignment) error
		setupMock func(mock sqlmock.Sqlmock)
		wantErrIs error
		wantErr   bool
		want      *model.StudentAssignment
	}{
		{
			name: "transitions when the status matches",
			from: model.StatusInProgress,
			fn: func(sa *model.StudentAssignment) error {
				sa.Status = model.StatusSubmitted
				sa.Attempts++
				sa.SubmittedAt = &now
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT \\* FROM student_assignments WHERE id = \\? FOR UPDATE").
					WithArgs("sa1").
					WillReturnRows(lockedRow("IN_PROGRESS"))
				mock.ExpectExec("UPDATE student_assignments SET status = \\?, score = \\?, attempts = \\?, submitted_at = \\?, graded_at = \\? WHERE id = \\?").
					WithArgs("SUBMITTED", 0.0, 1, now, nil, "sa1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			want: &model.StudentAssignment{
				ID:           "sa1",
				StudentID:    "s1",
				AssignmentID: "as1",
				Status:       model.StatusSubmitted,
				Attempts:     1,
				SubmittedAt:  &now,
				CreatedAt:    now,
				UpdatedAt:    now,
			},
		},
		{
			name: "rejects a status mismatch without writing",
			from: model.StatusInProgress,
			fn: func(sa *model.StudentAssignment) error {
				sa.Status = model.StatusSubmitted
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT \\* FROM student_assignments WHERE id = \\? FOR UPDATE").
					WithArgs("sa1").
					WillReturnRows(lockedRow("SUBMITTED"))
				mock.ExpectRollback()
			},
			wantErrIs: model.ErrInvalidState,
		},
		{
			name: "missing row is not found",
			from: model.StatusAssigned,
			fn:   func(sa *model.StudentAssignment) error { return nil },
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT \\* FROM student_assignments WHERE id = \\? FOR UPDATE").
					WithArgs("sa1").
					WillReturnRows(sqlmock.NewRows(studentAssignmentColumns))
				mock.ExpectRollback()
			},
			wantErrIs: model.ErrNotFound,
		},
		{
			name: "fn error aborts the transaction",
			from: model.StatusAssigned,
			fn:   func(sa *model.StudentAssignment) error { return fmt.Errorf("retake not allowed: %w", model.ErrInvalidState) },
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT \\* FROM student_assignments WHERE id = \\? FOR UPDATE").
					WillReturnRows(lockedRow("ASSIGNED"))
				mock.ExpectRollback()
			},
			wantErrIs: model.ErrInvalidState,
		},
		{
			name: "update error",
			from: model.StatusAssigned,
			fn: func(sa *model.StudentAssignment) error {
				sa.Status = model.StatusInProgress
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT \\* FROM student_assignments WHERE id = \\? FOR UPDATE").
					WillReturnRows(lockedRow("ASSIGNED"))
				mock.ExpectExec("UPDATE student_assignments").
					WillReturnError(fmt.Errorf("connection reset"))
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

			repo := NewDBStudentAssignmentRepository(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			got, err := repo.UpdateStatus(context.Background(), "sa1", tt.from, tt.fn)
			switch {
			case tt.wantErrIs != nil:
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Nil(t, got)
			case tt.wantErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBStudentAssignmentRepository_FindByStudentID(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT \\* FROM student_assignments WHERE student_id = \\? ORDER BY created_at, id").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(studentAssignmentColumns).
			AddRow("sa1", "s1", "as1", "GRADED", 65.0, 1, false, nil, now, now, now, now).
			AddRow("sa2", "s1", "as2", "ASSIGNED", 0.0, 0, true, "as1", nil, nil, now, now))

	got, err := NewDBStudentAssignmentRepository(sqlx.NewDb(db, "mysql")).FindByStudentID(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.StatusGraded, got[0].Status)
	assert.Nil(t, got[0].OriginalAssignmentID)
	assert.True(t, got[1].IsAdaptive)
	require.NotNil(t, got[1].OriginalAssignmentID)
	assert.Equal(t, "as1", *got[1].OriginalAssignmentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBStudentAssignmentRepository_Submit(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	submittedAt := time.Date(2025, 1, 2, 9, 30, 15, 123456000, time.UTC)
	correct := true

	lockedRow := func(status string) *sqlmock.Rows {
		return sqlmock.NewRows(studentAssignmentColumns).
			AddRow("sa1", "s1", "as1", status, 0.0, 0, false, nil, nil, nil, now, now)
	}
	submit := func(sa *model.StudentAssignment) ([]*model.Answer, error) {
		sa.Status = model.StatusSubmitted
		sa.Attempts++
		sa.SubmittedAt = &submittedAt
		return []*model.Answer{
			{ID: "a1", StudentID: sa.StudentID, QuestionID: "q1", StudentAssignmentID: sa.ID, AttemptNumber: sa.Attempts, IsCorrect: &correct, CreatedAt: submittedAt},
		}, nil
	}

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErrIs error
		wantErr   string
	}{
		{
			name: "updates the row and inserts answers in one transaction",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT \\* FROM student_assignments WHERE id = \\? FOR UPDATE").
					WithArgs("sa1").
					WillReturnRows(lockedRow("IN_PROGRESS"))
				mock.ExpectExec("UPDATE student_assignments SET status = \\?, score = \\?, attempts = \\?, submitted_at = \\?, graded_at = \\? WHERE id = \\?").
					WithArgs("SUBMITTED", 0.0, 1, submittedAt, nil, "sa1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO answers \\(id, student_id, question_id, student_assignment_id, attempt_number, is_correct, payload, feedback, essay_score, created_at\\) VALUES").
					WithArgs("a1", "s1", "q1", "sa1", 1, true, sqlmock.AnyArg(), "", nil, submittedAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "answer insert failure rolls back the status change",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT \\* FROM student_assignments WHERE id = \\? FOR UPDATE").
					WillReturnRows(lockedRow("IN_PROGRESS"))
				mock.ExpectExec("UPDATE student_assignments").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO answers").
					WillReturnError(fmt.Errorf("connection reset"))
				mock.ExpectRollback()
			},
			wantErr: "store answers of sa1 attempt 1: insert answers: connection reset",
		},
		{
			name: "rejects a student assignment that is not in progress",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT \\* FROM student_assignments WHERE id = \\? FOR UPDATE").
					WillReturnRows(lockedRow("SUBMITTED"))
				mock.ExpectRollback()
			},
			wantErrIs: model.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBStudentAssignmentRepository(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			got, err := repo.Submit(context.Background(), "sa1", submit)
			switch {
			case tt.wantErrIs != nil:
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Nil(t, got)
			case tt.wantErr != "":
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, got)
			default:
				require.NoError(t, err)
				assert.Equal(t, model.StatusSubmitted, got.Status)
				assert.Equal(t, 1, got.Attempts)
				assert.Equal(t, &submittedAt, got.SubmittedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
