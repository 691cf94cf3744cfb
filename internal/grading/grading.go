// Package grading computes per-answer correctness and assignment scores.
//
// Grading is pure: nothing here reads or writes a store. Callers persist the
// outcomes.
package grading

import (
	"strings"

	"github.com/at-ishikawa/adaptlearn/internal/model"
)

// Submission pairs an answer with the question it answers.
type Submission struct {
	Question model.Question
	Answer   model.Answer
}

// Outcome is the grading result of one answer.
type Outcome struct {
	AnswerID   string
	QuestionID string
	Gradable   bool
	Correct    bool
}

// Result is the grading result of a batch of answers.
type Result struct {
	Score         float64
	GradableCount int
	CorrectCount  int
	Outcomes      []Outcome
}

// Grade scores a batch of answers.
// Essays count only once a human has set IsCorrect. With no gradable answer the
// score is 0.
func Grade(submissions []Submission) Result {
	result := Result{
		Outcomes: make([]Outcome, 0, len(submissions)),
	}
	for _, s := range submissions {
		outcome := Outcome{
			AnswerID:   s.Answer.ID,
			QuestionID: s.Question.ID,
		}
		if s.Question.Type == model.QuestionTypeEssay {
			if s.Answer.IsCorrect != nil {
				outcome.Gradable = true
				outcome.Correct = *s.Answer.IsCorrect
			}
		} else {
			outcome.Correct, outcome.Gradable = Evaluate(s.Question, s.Answer.Payload)
		}

		if outcome.Gradable {
			result.GradableCount++
			if outcome.Correct {
				result.CorrectCount++
			}
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	if result.GradableCount > 0 {
		result.Score = 100 * float64(result.CorrectCount) / float64(result.GradableCount)
	}
	return result
}

// Evaluate checks one answer payload against the question's answer key.
// gradable is false for essays and unknown question types.
func Evaluate(q model.Question, p model.AnswerPayload) (correct bool, gradable bool) {
	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		return isOptionCorrect(q.Key.Options, p.SelectedOptionID), true
	case model.QuestionTypeTrueFalse:
		if q.Key.CorrectBool == nil || p.BoolAnswer == nil {
			return false, true
		}
		return *q.Key.CorrectBool == *p.BoolAnswer, true
	case model.QuestionTypeShortAnswer:
		return isAcceptedAnswer(q.Key.AcceptedAnswers, p.TextAnswer, q.Key.CaseSensitive), true
	case model.QuestionTypeMatching:
		return isMatchingCorrect(q.Key.Pairs, p.Matches), true
	default:
		return false, false
	}
}

func isOptionCorrect(options []model.Option, selectedID string) bool {
	for _, o := range options {
		if o.ID == selectedID {
			return o.IsCorrect
		}
	}
	return false
}

func isAcceptedAnswer(accepted []string, answer string, caseSensitive bool) bool {
	answer = strings.TrimSpace(answer)
	for _, a := range accepted {
		a = strings.TrimSpace(a)
		if caseSensitive {
			if a == answer {
				return true
			}
			continue
		}
		if strings.EqualFold(a, answer) {
			return true
		}
	}
	return false
}

// isMatchingCorrect requires the submission to pair every left item exactly as
// the canonical pairing does. A single mismatch fails the whole question.
func isMatchingCorrect(canonical, submitted []model.MatchPair) bool {
	if len(canonical) != len(submitted) {
		return false
	}
	want := make(map[string]string, len(canonical))
	for _, p := range canonical {
		want[p.Left] = p.Right
	}
	seen := make(map[string]struct{}, len(submitted))
	for _, p := range submitted {
		right, ok := want[p.Left]
		if !ok || right != p.Right {
			return false
		}
		if _, dup := seen[p.Left]; dup {
			return false
		}
		seen[p.Left] = struct{}{}
	}
	return true
}
