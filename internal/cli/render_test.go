package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/adaptlearn/internal/engine"
	"github.com/at-ishikawa/adaptlearn/internal/grading"
	"github.com/at-ishikawa/adaptlearn/internal/model"
)

func TestRenderer_GradeResult(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name    string
		result  *engine.GradeResult
		want    []string
		wantNot []string
	}{
		{
			name: "graded with a follow-up",
			result: &engine.GradeResult{
				StudentAssignment: &model.StudentAssignment{ID: "sa1", Status: model.StatusGraded, Attempts: 1},
				Score:             50,
				GradableCount:     2,
				CorrectCount:      1,
				Outcomes: []grading.Outcome{
					{AnswerID: "a1", QuestionID: "q1", Gradable: true, Correct: true},
					{AnswerID: "a2", QuestionID: "q2", Gradable: true},
					{AnswerID: "a3", QuestionID: "q3"},
				},
				AdaptiveAssignment:        &model.Assignment{Title: "Adaptive: Fractions", QuestionIDs: model.StringList{"q2", "r1"}},
				AdaptiveStudentAssignment: &model.StudentAssignment{ID: "sa2"},
			},
			want: []string{
				"✅ q1: correct",
				"❌ q2: wrong",
				"⏳ q3: waiting for manual grading (answer a3)",
				"Score: 50.0 (1/2 correct)",
				"Status: GRADED, attempt 1",
				"Follow-up assigned: Adaptive: Fractions with 2 questions (student assignment sa2)",
			},
		},
		{
			name: "no follow-up",
			result: &engine.GradeResult{
				Score:         100,
				GradableCount: 1,
				CorrectCount:  1,
				Outcomes:      []grading.Outcome{{AnswerID: "a1", QuestionID: "q1", Gradable: true, Correct: true}},
			},
			want:    []string{"Score: 100.0 (1/1 correct)"},
			wantNot: []string{"Follow-up", "Status:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewRenderer(&buf).GradeResult(tt.result))

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
			for _, notWant := range tt.wantNot {
				assert.NotContains(t, buf.String(), notWant)
			}
		})
	}
}

func TestRenderer_StudentAssignments(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	r := NewRenderer(&buf)
	require.NoError(t, r.StudentAssignments(nil))
	assert.Equal(t, "No assignments.\n", buf.String())

	buf.Reset()
	require.NoError(t, r.StudentAssignments([]model.StudentAssignment{
		{ID: "sa1", AssignmentID: "as1", Status: model.StatusGraded, Score: 75, Attempts: 2},
		{ID: "sa2", AssignmentID: "as2", Status: model.StatusAssigned, IsAdaptive: true},
	}))
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "ID   ASSIGNMENT  STATUS    SCORE  ATTEMPTS  ADAPTIVE", string(lines[0]))
	assert.Equal(t, "sa1  as1         GRADED    75.0   2         false", string(lines[1]))
	assert.Equal(t, "sa2  as2         ASSIGNED  0.0    0         true", string(lines[2]))
}

func TestRenderer_Lists(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	r := NewRenderer(&buf)

	require.NoError(t, r.QuestionIDs("Due", nil))
	require.NoError(t, r.QuestionIDs("Due", []string{"q1", "q2"}))
	require.NoError(t, r.Questions("Missed", []model.Question{{ID: "q1", Prompt: "1/2 + 1/4?", Tags: []string{"fractions"}}}))
	require.NoError(t, r.SchedulingRecord(&model.SchedulingRecord{
		QuestionID:     "q1",
		EaseFactor:     2.6,
		IntervalDays:   6,
		Repetitions:    2,
		NextReviewDate: time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
	}))
	score := 90.0
	correct := true
	require.NoError(t, r.Answer(&model.Answer{ID: "a1", IsCorrect: &correct, EssayScore: &score, Feedback: "Nice"}))

	assert.Equal(t, "Due: none\n"+
		"Due: q1, q2\n"+
		"Missed\n"+
		"1. [q1] 1/2 + 1/4? (fractions)\n"+
		"q1: next review 2025-03-16 (interval 6 days, ease 2.60, repetitions 2)\n"+
		"a1: correct, score 90.0 Nice\n", buf.String())
}
