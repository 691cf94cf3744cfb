// Package cli renders engine results on a terminal and runs interactive
// practice quizzes.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/adaptlearn/internal/engine"
	"github.com/at-ishikawa/adaptlearn/internal/model"
)

// Renderer writes human readable output.
type Renderer struct {
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	green        *color.Color
	red          *color.Color
	yellow       *color.Color
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		stdoutWriter: w,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		green:        color.New(color.FgGreen),
		red:          color.New(color.FgRed),
		yellow:       color.New(color.FgYellow),
	}
}

func (r *Renderer) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.stdoutWriter, format, args...); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

// GradeResult prints one line per answer, the score and the adaptive follow-up if any.
func (r *Renderer) GradeResult(result *engine.GradeResult) error {
	for _, o := range result.Outcomes {
		var err error
		switch {
		case !o.Gradable:
			_, err = r.yellow.Fprintf(r.stdoutWriter, "⏳ %s: waiting for manual grading (answer %s)\n", o.QuestionID, o.AnswerID)
		case o.Correct:
			_, err = r.green.Fprintf(r.stdoutWriter, "✅ %s: correct\n", o.QuestionID)
		default:
			_, err = r.red.Fprintf(r.stdoutWriter, "❌ %s: wrong\n", o.QuestionID)
		}
		if err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}

	if err := r.printf("Score: %s (%d/%d correct)\n",
		r.bold.Sprintf("%.1f", result.Score), result.CorrectCount, result.GradableCount); err != nil {
		return err
	}
	if sa := result.StudentAssignment; sa != nil {
		if err := r.printf("Status: %s, attempt %d\n", sa.Status, sa.Attempts); err != nil {
			return err
		}
	}
	if result.AdaptiveAssignment != nil {
		if err := r.printf("Follow-up assigned: %s with %d questions (student assignment %s)\n",
			r.italic.Sprintf("%s", result.AdaptiveAssignment.Title),
			len(result.AdaptiveAssignment.QuestionIDs),
			result.AdaptiveStudentAssignment.ID); err != nil {
			return err
		}
	}
	return nil
}

// StudentAssignment prints a single student assignment.
func (r *Renderer) StudentAssignment(sa *model.StudentAssignment) error {
	return r.printf("%s %s (assignment %s) score %.1f, attempts %d\n",
		r.bold.Sprintf("%s", sa.ID), sa.Status, sa.AssignmentID, sa.Score, sa.Attempts)
}

// StudentAssignments prints a table of student assignments.
func (r *Renderer) StudentAssignments(list []model.StudentAssignment) error {
	if len(list) == 0 {
		return r.printf("No assignments.\n")
	}
	w := tabwriter.NewWriter(r.stdoutWriter, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tASSIGNMENT\tSTATUS\tSCORE\tATTEMPTS\tADAPTIVE")
	for _, sa := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%d\t%t\n", sa.ID, sa.AssignmentID, sa.Status, sa.Score, sa.Attempts, sa.IsAdaptive)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

// SchedulingRecord prints the next review of a question.
func (r *Renderer) SchedulingRecord(rec *model.SchedulingRecord) error {
	return r.printf("%s: next review %s (interval %d days, ease %.2f, repetitions %d)\n",
		r.bold.Sprintf("%s", rec.QuestionID),
		rec.NextReviewDate.Format(time.DateOnly),
		rec.IntervalDays, rec.EaseFactor, rec.Repetitions)
}

// QuestionIDs prints a titled list of ids.
func (r *Renderer) QuestionIDs(title string, ids []string) error {
	if len(ids) == 0 {
		return r.printf("%s: none\n", title)
	}
	return r.printf("%s: %s\n", title, strings.Join(ids, ", "))
}

// Questions prints a numbered list of questions.
func (r *Renderer) Questions(title string, questions []model.Question) error {
	if len(questions) == 0 {
		return r.printf("%s: none\n", title)
	}
	if err := r.printf("%s\n", r.bold.Sprintf("%s", title)); err != nil {
		return err
	}
	for i, q := range questions {
		if err := r.printf("%d. [%s] %s %s\n", i+1, q.ID, q.Prompt,
			r.italic.Sprintf("(%s)", strings.Join(q.Tags, ", "))); err != nil {
			return err
		}
	}
	return nil
}

// Answer prints a manually graded answer.
func (r *Renderer) Answer(a *model.Answer) error {
	verdict := r.red.Sprint("wrong")
	if a.IsGradedCorrect() {
		verdict = r.green.Sprint("correct")
	}
	score := "-"
	if a.EssayScore != nil {
		score = fmt.Sprintf("%.1f", *a.EssayScore)
	}
	return r.printf("%s: %s, score %s %s\n", r.bold.Sprintf("%s", a.ID), verdict, score, a.Feedback)
}
