// Package worksheet renders practice sessions as printable worksheets.
package worksheet

import (
	"fmt"
	"slices"
	"strings"

	"github.com/at-ishikawa/adaptlearn/internal/model"
)

const answerLine = "______________________________"

// Markdown renders a numbered worksheet of questions.
func Markdown(title string, questions []model.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	for i, q := range questions {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, q.Prompt)
		switch q.Type {
		case model.QuestionTypeMultipleChoice:
			for _, o := range q.Key.Options {
				fmt.Fprintf(&b, "- [ ] %s) %s\n", o.ID, o.Text)
			}
			b.WriteString("\n")
		case model.QuestionTypeTrueFalse:
			b.WriteString("True / False\n\n")
		case model.QuestionTypeMatching:
			b.WriteString("| Left | Right |\n|---|---|\n")
			rights := make([]string, 0, len(q.Key.Pairs))
			for _, p := range q.Key.Pairs {
				rights = append(rights, p.Right)
			}
			// Right column in sorted order, not paired.
			slices.Sort(rights)
			for j, p := range q.Key.Pairs {
				fmt.Fprintf(&b, "| %s | %s |\n", p.Left, rights[j])
			}
			b.WriteString("\n")
		case model.QuestionTypeEssay:
			for range 4 {
				b.WriteString(answerLine + "\n\n")
			}
		default:
			b.WriteString(answerLine + "\n\n")
		}
	}
	return b.String()
}

// AnswerKey renders the expected answer of every auto-gradable question.
func AnswerKey(questions []model.Question) string {
	var b strings.Builder
	b.WriteString("# Answer key\n\n")
	for i, q := range questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, expected(q))
	}
	return b.String()
}

func expected(q model.Question) string {
	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		var ids []string
		for _, o := range q.Key.Options {
			if o.IsCorrect {
				ids = append(ids, o.ID)
			}
		}
		return strings.Join(ids, ", ")
	case model.QuestionTypeTrueFalse:
		if q.Key.CorrectBool == nil {
			return "-"
		}
		if *q.Key.CorrectBool {
			return "True"
		}
		return "False"
	case model.QuestionTypeShortAnswer:
		return strings.Join(q.Key.AcceptedAnswers, " / ")
	case model.QuestionTypeMatching:
		pairs := make([]string, 0, len(q.Key.Pairs))
		for _, p := range q.Key.Pairs {
			pairs = append(pairs, p.Left+" - "+p.Right)
		}
		return strings.Join(pairs, ", ")
	default:
		return "(graded by a teacher)"
	}
}
