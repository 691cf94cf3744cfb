package practice

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/adaptlearn/internal/metrics"
	mock_repository "github.com/at-ishikawa/adaptlearn/internal/mocks/repository"
	"github.com/at-ishikawa/adaptlearn/internal/model"
	"github.com/at-ishikawa/adaptlearn/internal/random"
	"github.com/at-ishikawa/adaptlearn/internal/repository/memory"
)

type history struct {
	questionID string
	correct    bool
}

func newStore(t *testing.T, questions []*model.Question, answers []history) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Questions().BatchCreate(ctx, questions))

	var list []*model.Answer
	for i, h := range answers {
		correct := h.correct
		list = append(list, &model.Answer{
			ID:                  fmt.Sprintf("a%d", i),
			StudentID:           "s1",
			QuestionID:          h.questionID,
			StudentAssignmentID: "sa1",
			AttemptNumber:       1,
			IsCorrect:           &correct,
		})
	}
	require.NoError(t, store.Answers().BatchCreate(ctx, list))
	return store
}

func tagged(id string, tags ...string) *model.Question {
	return &model.Question{ID: id, Type: model.QuestionTypeTrueFalse, Tags: tags}
}

func TestGenerator_FrequentlyMissedQuestions(t *testing.T) {
	store := newStore(t,
		[]*model.Question{tagged("q1"), tagged("q2"), tagged("q3"), tagged("q4"), tagged("q5")},
		[]history{
			{"q5", false},
			{"q2", false},
			{"q1", false},
			{"q2", false},
			{"q4", false},
			{"q3", true},
			{"q1", false},
			{"q2", false},
		})

	got, err := NewGenerator(store.Questions(), store.Answers()).FrequentlyMissedQuestions(context.Background(), "s1")
	require.NoError(t, err)

	var ids []string
	for _, q := range got {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"q2", "q1", "q5", "q4"}, ids)
}

func TestGenerator_FrequentlyMissedQuestions_SkipsDeletedQuestions(t *testing.T) {
	store := newStore(t,
		[]*model.Question{tagged("q1")},
		[]history{{"gone", false}, {"gone", false}, {"q1", false}})

	got, err := NewGenerator(store.Questions(), store.Answers()).FrequentlyMissedQuestions(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "q1", got[0].ID)
}

func TestGenerator_GeneratePracticeQuiz(t *testing.T) {
	questions := []*model.Question{
		tagged("m1", "fractions"),
		tagged("m2", "fractions"),
		tagged("m3", "decimals"),
		tagged("r1", "fractions"),
		tagged("r2", "fractions"),
		tagged("r3", "decimals"),
		tagged("mastered", "fractions"),
		tagged("unrelated", "history"),
	}
	answers := []history{
		{"m1", false}, {"m1", false},
		{"m2", false},
		{"m3", false},
		// A missed question stays a candidate even once mastered.
		{"m3", true}, {"m3", true}, {"m3", true},
		{"mastered", true}, {"mastered", true}, {"mastered", true},
		{"r1", true}, {"r1", true},
	}

	tests := []struct {
		name          string
		questionCount int
		wantLen       int
		wantAll       []string
		wantSubsetOf  []string
	}{
		{
			name:          "includes every missed question and fills with unmastered related ones",
			questionCount: 10,
			wantLen:       6,
			wantAll:       []string{"m1", "m2", "m3", "r1", "r2", "r3"},
		},
		{
			name:          "missed questions come before related ones",
			questionCount: 4,
			wantLen:       4,
			wantAll:       []string{"m1", "m2", "m3"},
			wantSubsetOf:  []string{"m1", "m2", "m3", "r1", "r2", "r3"},
		},
		{
			name:          "more missed than requested yields only missed questions",
			questionCount: 2,
			wantLen:       2,
			wantSubsetOf:  []string{"m1", "m2", "m3"},
		},
		{
			name:          "zero count uses the default",
			questionCount: 0,
			wantLen:       6,
			wantAll:       []string{"m1", "m2", "m3", "r1", "r2", "r3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t, questions, answers)
			g := NewGenerator(store.Questions(), store.Answers(), WithRandom(random.NewSeeded(11, 13)))

			got, err := g.GeneratePracticeQuiz(context.Background(), "s1", tt.questionCount)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
			for _, id := range tt.wantAll {
				assert.Contains(t, got, id)
			}
			if tt.wantSubsetOf != nil {
				assert.Subset(t, tt.wantSubsetOf, got)
			}
			assert.NotContains(t, got, "mastered")
			assert.NotContains(t, got, "unrelated")

			seen := map[string]bool{}
			for _, id := range got {
				assert.False(t, seen[id], "duplicate id %s", id)
				seen[id] = true
			}
		})
	}
}

func TestGenerator_GeneratePracticeQuiz_NeverOmitsMissed(t *testing.T) {
	var questions []*model.Question
	var answers []history
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("m%d", i)
		questions = append(questions, tagged(id, "shared"))
		answers = append(answers, history{id, false})
	}
	for i := 0; i < 20; i++ {
		questions = append(questions, tagged(fmt.Sprintf("r%02d", i), "shared"))
	}
	store := newStore(t, questions, answers)

	for seed := uint64(0); seed < 50; seed++ {
		g := NewGenerator(store.Questions(), store.Answers(), WithRandom(random.NewSeeded(seed, seed+1)))
		got, err := g.GeneratePracticeQuiz(context.Background(), "s1", 10)
		require.NoError(t, err)
		require.Len(t, got, 10)
		for i := 0; i < 8; i++ {
			assert.Contains(t, got, fmt.Sprintf("m%d", i))
		}
	}
}

func TestGenerator_GeneratePracticeQuiz_NoHistory(t *testing.T) {
	store := newStore(t, []*model.Question{tagged("q1", "a")}, nil)
	got, err := NewGenerator(store.Questions(), store.Answers()).GeneratePracticeQuiz(context.Background(), "s1", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGenerator_GenerateSession(t *testing.T) {
	store := newStore(t,
		[]*model.Question{tagged("m1", "x"), tagged("r1", "x")},
		[]history{{"m1", false}})
	reg := prometheus.NewRegistry()
	g := NewGenerator(store.Questions(), store.Answers(),
		WithRandom(random.NewSeeded(1, 1)),
		WithMetrics(metrics.New(reg)))

	session, err := g.GenerateSession(context.Background(), "s1", 5)
	require.NoError(t, err)
	assert.Equal(t, "s1", session.StudentID)
	require.Len(t, session.Questions, len(session.QuestionIDs))
	for i, q := range session.Questions {
		assert.Equal(t, session.QuestionIDs[i], q.ID)
	}
	assert.ElementsMatch(t, []string{"m1", "r1"}, session.QuestionIDs)
}

func TestGenerator_StoreFailures(t *testing.T) {
	ctx := context.Background()
	errDB := errors.New("connection refused")
	f := false
	missed := []model.Answer{{ID: "a1", StudentID: "s1", QuestionID: "m1", IsCorrect: &f}}

	tests := []struct {
		name    string
		setup   func(questions *mock_repository.MockQuestionRepository, answers *mock_repository.MockAnswerRepository)
		want    []string
		wantErr error
	}{
		{
			name: "incorrect answers lookup fails",
			setup: func(questions *mock_repository.MockQuestionRepository, answers *mock_repository.MockAnswerRepository) {
				answers.EXPECT().FindIncorrectByStudentID(gomock.Any(), "s1").Return(nil, errDB)
			},
			wantErr: errDB,
		},
		{
			name: "related lookup failure degrades to missed questions",
			setup: func(questions *mock_repository.MockQuestionRepository, answers *mock_repository.MockAnswerRepository) {
				answers.EXPECT().FindIncorrectByStudentID(gomock.Any(), "s1").Return(missed, nil)
				questions.EXPECT().FindByIDs(gomock.Any(), []string{"m1"}).Return([]model.Question{{ID: "m1", Tags: []string{"x"}}}, nil)
				questions.EXPECT().FindByTags(gomock.Any(), []string{"x"}).Return(nil, errDB)
				answers.EXPECT().FindByStudentID(gomock.Any(), "s1").Return(missed, nil)
			},
			want: []string{"m1"},
		},
		{
			name: "history lookup fails",
			setup: func(questions *mock_repository.MockQuestionRepository, answers *mock_repository.MockAnswerRepository) {
				answers.EXPECT().FindIncorrectByStudentID(gomock.Any(), "s1").Return(missed, nil)
				questions.EXPECT().FindByIDs(gomock.Any(), []string{"m1"}).Return([]model.Question{{ID: "m1"}}, nil)
				answers.EXPECT().FindByStudentID(gomock.Any(), "s1").Return(nil, errDB)
			},
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			questions := mock_repository.NewMockQuestionRepository(ctrl)
			answers := mock_repository.NewMockAnswerRepository(ctrl)
			tt.setup(questions, answers)

			got, err := NewGenerator(questions, answers).GeneratePracticeQuiz(ctx, "s1", 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
