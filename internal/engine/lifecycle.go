package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/adaptlearn/internal/adaptive"
	"github.com/at-ishikawa/adaptlearn/internal/grading"
	"github.com/at-ishikawa/adaptlearn/internal/model"
)

// AnswerInput is one answer of a submission.
type AnswerInput struct {
	QuestionID          string `json:"question_id" yaml:"question_id"`
	model.AnswerPayload `yaml:",inline"`
}

// GradeResult is the outcome of a grading event.
// The adaptive fields are set only when a follow-up was created.
type GradeResult struct {
	StudentAssignment         *model.StudentAssignment `json:"student_assignment"`
	Score                     float64                  `json:"score"`
	GradableCount             int                      `json:"gradable_count"`
	CorrectCount              int                      `json:"correct_count"`
	Outcomes                  []grading.Outcome        `json:"outcomes"`
	AdaptiveAssignment        *model.Assignment        `json:"adaptive_assignment,omitempty"`
	AdaptiveStudentAssignment *model.StudentAssignment `json:"adaptive_student_assignment,omitempty"`
}

// transition wraps UpdateStatus and counts rejected transitions.
func (s *Service) transition(ctx context.Context, id string, from model.Status, fn func(sa *model.StudentAssignment) error) (*model.StudentAssignment, error) {
	sa, err := s.studentAssignments.UpdateStatus(ctx, id, from, fn)
	if err != nil {
		if errors.Is(err, model.ErrInvalidState) {
			s.metrics.TransitionRejected()
		}
		return nil, err
	}
	return sa, nil
}

// submit stores an attempt and its answers together.
func (s *Service) submit(ctx context.Context, id string, fn func(sa *model.StudentAssignment) ([]*model.Answer, error)) (*model.StudentAssignment, error) {
	sa, err := s.studentAssignments.Submit(ctx, id, fn)
	if err != nil {
		if errors.Is(err, model.ErrInvalidState) {
			s.metrics.TransitionRejected()
		}
		return nil, err
	}
	return sa, nil
}

// StartAssignment moves a student assignment from ASSIGNED to IN_PROGRESS.
func (s *Service) StartAssignment(ctx context.Context, studentAssignmentID string) (*model.StudentAssignment, error) {
	return s.transition(ctx, studentAssignmentID, model.StatusAssigned, func(sa *model.StudentAssignment) error {
		sa.Status = model.StatusInProgress
		return nil
	})
}

// SubmitAssignment records one attempt and grades it right away.
// The attempt and its answers are stored together or not at all.
// Answers must be non-empty and belong to the assignment. A question may be
// answered more than once only when the assignment allows question retries;
// the last answer wins.
func (s *Service) SubmitAssignment(ctx context.Context, studentAssignmentID string, inputs []AnswerInput) (*GradeResult, error) {
	current, err := s.studentAssignments.FindByID(ctx, studentAssignmentID)
	if err != nil {
		return nil, err
	}
	if current.Status != model.StatusInProgress {
		s.metrics.TransitionRejected()
		return nil, fmt.Errorf("student assignment %s is %s, not %s: %w", current.ID, current.Status, model.StatusInProgress, model.ErrInvalidState)
	}
	assignment, err := s.assignments.FindByID(ctx, current.AssignmentID)
	if err != nil {
		return nil, err
	}
	inputs, err = normalizeInputs(assignment, inputs)
	if err != nil {
		return nil, err
	}
	questions, err := s.loadQuestions(ctx, inputQuestionIDs(inputs))
	if err != nil {
		return nil, err
	}
	for _, in := range inputs {
		if _, ok := questions[in.QuestionID]; !ok {
			return nil, fmt.Errorf("question %s: %w", in.QuestionID, model.ErrNotFound)
		}
	}

	now := s.now()
	_, err = s.submit(ctx, studentAssignmentID, func(sa *model.StudentAssignment) ([]*model.Answer, error) {
		sa.Status = model.StatusSubmitted
		sa.Attempts++
		sa.SubmittedAt = &now

		answers := make([]*model.Answer, 0, len(inputs))
		for _, in := range inputs {
			answer := &model.Answer{
				ID:                  s.newID(),
				StudentID:           sa.StudentID,
				QuestionID:          in.QuestionID,
				StudentAssignmentID: sa.ID,
				AttemptNumber:       sa.Attempts,
				Payload:             in.AnswerPayload,
				CreatedAt:           now,
			}
			if correct, gradable := grading.Evaluate(questions[in.QuestionID], in.AnswerPayload); gradable {
				answer.IsCorrect = &correct
			}
			answers = append(answers, answer)
		}
		return answers, nil
	})
	if err != nil {
		return nil, err
	}

	return s.GradeAssignment(ctx, studentAssignmentID)
}

func normalizeInputs(assignment *model.Assignment, inputs []AnswerInput) ([]AnswerInput, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no answers submitted for assignment %s: %w", assignment.ID, model.ErrInvalidInput)
	}
	position := make(map[string]int, len(inputs))
	normalized := make([]AnswerInput, 0, len(inputs))
	for _, in := range inputs {
		if !assignment.HasQuestion(in.QuestionID) {
			return nil, fmt.Errorf("question %s is not part of assignment %s: %w", in.QuestionID, assignment.ID, model.ErrInvalidInput)
		}
		if i, ok := position[in.QuestionID]; ok {
			if !assignment.Settings.AllowQuestionRetry {
				return nil, fmt.Errorf("question %s answered more than once: %w", in.QuestionID, model.ErrInvalidInput)
			}
			normalized[i] = in
			continue
		}
		position[in.QuestionID] = len(normalized)
		normalized = append(normalized, in)
	}
	return normalized, nil
}

func inputQuestionIDs(inputs []AnswerInput) []string {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.QuestionID)
	}
	return ids
}

func (s *Service) loadQuestions(ctx context.Context, ids []string) (map[string]model.Question, error) {
	found, err := s.questions.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	byID := make(map[string]model.Question, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}
	return byID, nil
}

// attemptAnswers returns the answers of the latest attempt of sa.
func (s *Service) attemptAnswers(ctx context.Context, sa *model.StudentAssignment) ([]model.Answer, error) {
	all, err := s.answers.FindByStudentAssignmentID(ctx, sa.ID)
	if err != nil {
		return nil, fmt.Errorf("find answers of %s: %w", sa.ID, err)
	}
	return slices.DeleteFunc(all, func(a model.Answer) bool {
		return a.AttemptNumber != sa.Attempts
	}), nil
}

func (s *Service) gradeAnswers(ctx context.Context, answers []model.Answer) (grading.Result, error) {
	ids := make([]string, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, a.QuestionID)
	}
	questions, err := s.loadQuestions(ctx, ids)
	if err != nil {
		return grading.Result{}, err
	}

	submissions := make([]grading.Submission, 0, len(answers))
	for _, a := range answers {
		q, ok := questions[a.QuestionID]
		if !ok {
			slog.Default().Warn("skipping answer of missing question",
				"answer_id", a.ID,
				"question_id", a.QuestionID)
			continue
		}
		submissions = append(submissions, grading.Submission{Question: q, Answer: a})
	}

	result := grading.Grade(submissions)
	if err := model.ValidateScore(result.Score); err != nil {
		return grading.Result{}, err
	}
	return result, nil
}

// GradeAssignment grades the latest attempt of a SUBMITTED student assignment.
// Once GRADED, the adaptive follow-up and the scheduler reviews of every
// gradable answer run concurrently.
func (s *Service) GradeAssignment(ctx context.Context, studentAssignmentID string) (*GradeResult, error) {
	current, err := s.studentAssignments.FindByID(ctx, studentAssignmentID)
	if err != nil {
		return nil, err
	}
	if current.Status != model.StatusSubmitted {
		s.metrics.TransitionRejected()
		return nil, fmt.Errorf("student assignment %s is %s, not %s: %w", current.ID, current.Status, model.StatusSubmitted, model.ErrInvalidState)
	}
	assignment, err := s.assignments.FindByID(ctx, current.AssignmentID)
	if err != nil {
		return nil, err
	}
	answers, err := s.attemptAnswers(ctx, current)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		s.metrics.TransitionRejected()
		return nil, fmt.Errorf("student assignment %s has no answers for attempt %d: %w", current.ID, current.Attempts, model.ErrInvalidState)
	}
	result, err := s.gradeAnswers(ctx, answers)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sa, err := s.transition(ctx, studentAssignmentID, model.StatusSubmitted, func(sa *model.StudentAssignment) error {
		if sa.Attempts != current.Attempts {
			return fmt.Errorf("student assignment %s attempt changed while grading: %w", sa.ID, model.ErrInvalidState)
		}
		sa.Status = model.StatusGraded
		sa.Score = result.Score
		sa.GradedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.AssignmentGraded()
	slog.Default().Info("graded assignment",
		"student_assignment_id", sa.ID,
		"student_id", sa.StudentID,
		"attempt", sa.Attempts,
		"score", result.Score,
		"gradable", result.GradableCount)

	graded := &GradeResult{
		StudentAssignment: sa,
		Score:             result.Score,
		GradableCount:     result.GradableCount,
		CorrectCount:      result.CorrectCount,
		Outcomes:          result.Outcomes,
	}
	if err := s.afterGrading(ctx, assignment, sa, answers, result, graded); err != nil {
		return graded, err
	}
	return graded, nil
}

func (s *Service) afterGrading(ctx context.Context, assignment *model.Assignment, sa *model.StudentAssignment, answers []model.Answer, result grading.Result, graded *GradeResult) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	if assignment.Settings.AdaptiveLearningEnabled && adaptive.ShouldReassign(result.Score, assignment, sa) {
		g.Go(func() error {
			followUp, followUpSA, err := s.policy.Build(gctx, assignment, sa, answers)
			if err != nil {
				return err
			}
			if followUp != nil {
				s.metrics.AdaptiveAssignmentCreated()
				graded.AdaptiveAssignment = followUp
				graded.AdaptiveStudentAssignment = followUpSA
			}
			return nil
		})
	}

	for _, outcome := range result.Outcomes {
		if !outcome.Gradable {
			continue
		}
		quality := s.incorrectQuality
		if outcome.Correct {
			quality = s.correctQuality
		}
		g.Go(func() error {
			_, err := s.scheduler.Review(gctx, sa.StudentID, outcome.QuestionID, quality)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("after grading %s: %w", sa.ID, err)
	}
	return nil
}

// RetakeAssignment resets a GRADED student assignment to ASSIGNED when the
// assignment allows retakes. Attempts are kept; the score is cleared.
func (s *Service) RetakeAssignment(ctx context.Context, studentAssignmentID string) (*model.StudentAssignment, error) {
	current, err := s.studentAssignments.FindByID(ctx, studentAssignmentID)
	if err != nil {
		return nil, err
	}
	assignment, err := s.assignments.FindByID(ctx, current.AssignmentID)
	if err != nil {
		return nil, err
	}
	if !assignment.Settings.AllowRetake {
		s.metrics.TransitionRejected()
		return nil, fmt.Errorf("assignment %s does not allow retakes: %w", assignment.ID, model.ErrInvalidState)
	}

	return s.transition(ctx, studentAssignmentID, model.StatusGraded, func(sa *model.StudentAssignment) error {
		sa.Status = model.StatusAssigned
		sa.Score = 0
		sa.SubmittedAt = nil
		sa.GradedAt = nil
		return nil
	})
}

// GradeEssay records a manual grade for an essay answer. When the answer
// belongs to the graded attempt of its student assignment, the score of that
// assignment is recomputed. A rescore is not a grading event.
func (s *Service) GradeEssay(ctx context.Context, answerID string, isCorrect bool, score float64, feedback string) (*model.Answer, error) {
	if err := model.ValidateScore(score); err != nil {
		return nil, err
	}
	answer, err := s.answers.FindByID(ctx, answerID)
	if err != nil {
		return nil, err
	}
	question, err := s.questions.FindByID(ctx, answer.QuestionID)
	if err != nil {
		return nil, err
	}
	if question.Type != model.QuestionTypeEssay {
		return nil, fmt.Errorf("answer %s is a %s answer, not an essay: %w", answerID, question.Type, model.ErrInvalidInput)
	}

	if err := s.answers.UpdateEssayGrade(ctx, answerID, isCorrect, score, feedback); err != nil {
		return nil, fmt.Errorf("grade essay %s: %w", answerID, err)
	}
	answer.IsCorrect = &isCorrect
	answer.EssayScore = &score
	answer.Feedback = feedback

	sa, err := s.studentAssignments.FindByID(ctx, answer.StudentAssignmentID)
	if err != nil {
		return nil, err
	}
	if sa.Status != model.StatusGraded || sa.Attempts != answer.AttemptNumber {
		return answer, nil
	}
	if err := s.rescore(ctx, sa); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *Service) rescore(ctx context.Context, sa *model.StudentAssignment) error {
	answers, err := s.attemptAnswers(ctx, sa)
	if err != nil {
		return err
	}
	result, err := s.gradeAnswers(ctx, answers)
	if err != nil {
		return err
	}
	_, err = s.transition(ctx, sa.ID, model.StatusGraded, func(cur *model.StudentAssignment) error {
		if cur.Attempts != sa.Attempts {
			return fmt.Errorf("student assignment %s attempt changed while rescoring: %w", sa.ID, model.ErrInvalidState)
		}
		cur.Score = result.Score
		return nil
	})
	if err != nil {
		return fmt.Errorf("rescore %s: %w", sa.ID, err)
	}
	slog.Default().Info("rescored assignment",
		"student_assignment_id", sa.ID,
		"score", result.Score)
	return nil
}
