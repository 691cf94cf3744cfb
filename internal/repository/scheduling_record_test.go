package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/adaptlearn/internal/model"
)

var schedulingRecordColumns = []string{"student_id", "question_id", "ease_factor", "interval_days", "repetitions", "next_review_date", "last_review_date"}

const upsertSchedulingRecordPattern = "INSERT INTO scheduling_records \\(student_id, question_id, ease_factor, interval_days, repetitions, next_review_date, last_review_date\\) VALUES \\(\\?, \\?, \\?, \\?, \\?, \\?, \\?\\) ON DUPLICATE KEY UPDATE"

func TestDBSchedulingRecordRepository_SaveThenGet(t *testing.T) {
	next := time.Date(2025, 1, 7, 9, 0, 0, 250125000, time.UTC)
	last := time.Date(2025, 1, 1, 9, 0, 0, 250125000, time.UTC)
	record := &model.SchedulingRecord{
		StudentID:      "s1",
		QuestionID:     "q1",
		EaseFactor:     2.36,
		IntervalDays:   6,
		Repetitions:    2,
		NextReviewDate: next,
		LastReviewDate: &last,
	}

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(upsertSchedulingRecordPattern).
		WithArgs("s1", "q1", 2.36, 6, 2, next, last).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM scheduling_records WHERE student_id = \\? AND question_id = \\?").
		WithArgs("s1", "q1").
		WillReturnRows(sqlmock.NewRows(schedulingRecordColumns).
			AddRow("s1", "q1", 2.36, 6, 2, next, last))

	repo := NewDBSchedulingRecordRepository(sqlx.NewDb(db, "mysql"))
	require.NoError(t, repo.Save(context.Background(), record))

	got, err := repo.Get(context.Background(), "s1", "q1")
	require.NoError(t, err)
	assert.Equal(t, record, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBSchedulingRecordRepository_Get_Absent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT \\* FROM scheduling_records WHERE student_id = \\? AND question_id = \\?").
		WithArgs("s1", "q1").
		WillReturnRows(sqlmock.NewRows(schedulingRecordColumns))

	got, err := NewDBSchedulingRecordRepository(sqlx.NewDb(db, "mysql")).Get(context.Background(), "s1", "q1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDBSchedulingRecordRepository_GetDue(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		limit     int
		setupMock func(mock sqlmock.Sqlmock)
		wantIDs   []string
		wantErr   bool
	}{
		{
			name:  "returns due records earliest first",
			limit: 5,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM scheduling_records WHERE student_id = \\? AND next_review_date <= \\? ORDER BY next_review_date, question_id LIMIT \\?").
					WithArgs("s1", now, 5).
					WillReturnRows(sqlmock.NewRows(schedulingRecordColumns).
						AddRow("s1", "q3", 2.5, 1, 0, now.AddDate(0, 0, -3), nil).
						AddRow("s1", "q1", 2.5, 1, 0, now.AddDate(0, 0, -1), nil))
			},
			wantIDs: []string{"q3", "q1"},
		},
		{
			name:      "zero limit returns nothing",
			limit:     0,
			setupMock: func(mock sqlmock.Sqlmock) {},
		},
		{
			name:  "db error",
			limit: 5,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM scheduling_records").
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

			repo := NewDBSchedulingRecordRepository(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			got, err := repo.GetDue(context.Background(), "s1", now, tt.limit)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			var ids []string
			for _, r := range got {
				ids = append(ids, r.QuestionID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBSchedulingRecordRepository_GetStudentQuestionIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT question_id FROM scheduling_records WHERE student_id = \\?").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"question_id"}).AddRow("q1").AddRow("q2"))

	got, err := NewDBSchedulingRecordRepository(sqlx.NewDb(db, "mysql")).GetStudentQuestionIDs(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "q2"}, got)
}

func TestDBSchedulingRecordRepository_Update(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)

	initialize := func(current *model.SchedulingRecord) (*model.SchedulingRecord, error) {
		if current != nil {
			rec := *current
			rec.Repetitions++
			return &rec, nil
		}
		return &model.SchedulingRecord{StudentID: "s1", QuestionID: "q1", EaseFactor: 2.5, IntervalDays: 1, NextReviewDate: tomorrow}, nil
	}

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantReps  int
		wantErr   bool
	}{
		{
			name: "absent record is passed as nil",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT \\* FROM scheduling_records WHERE student_id = \\? AND question_id = \\? FOR UPDATE").
					WithArgs("s1", "q1").
					WillReturnRows(sqlmock.NewRows(schedulingRecordColumns))
				mock.ExpectExec(upsertSchedulingRecordPattern).
					WithArgs("s1", "q1", 2.5, 1, 0, tomorrow, nil).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			wantReps: 0,
		},
		{
			name: "existing record is locked and rewritten",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT \\* FROM scheduling_records WHERE student_id = \\? AND question_id = \\? FOR UPDATE").
					WithArgs("s1", "q1").
					WillReturnRows(sqlmock.NewRows(schedulingRecordColumns).
						AddRow("s1", "q1", 2.5, 1, 1, tomorrow, now))
				mock.ExpectExec(upsertSchedulingRecordPattern).
					WithArgs("s1", "q1", 2.5, 1, 2, tomorrow, now).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectCommit()
			},
			wantReps: 2,
		},
		{
			name: "deadlock on the first attempt is retried",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT \\* FROM scheduling_records WHERE student_id = \\? AND question_id = \\? FOR UPDATE").
					WillReturnRows(sqlmock.NewRows(schedulingRecordColumns))
				mock.ExpectExec(upsertSchedulingRecordPattern).
					WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found"})
				mock.ExpectRollback()
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT \\* FROM scheduling_records WHERE student_id = \\? AND question_id = \\? FOR UPDATE").
					WillReturnRows(sqlmock.NewRows(schedulingRecordColumns))
				mock.ExpectExec(upsertSchedulingRecordPattern).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			wantReps: 0,
		},
		{
			name: "lock error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT \\* FROM scheduling_records").
					WillReturnError(fmt.Errorf("connection refused"))
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

			repo := NewDBSchedulingRecordRepository(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			got, err := repo.Update(context.Background(), "s1", "q1", initialize)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantReps, got.Repetitions)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
