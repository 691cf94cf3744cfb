package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/at-ishikawa/adaptlearn/internal/config"
	"github.com/at-ishikawa/adaptlearn/internal/grading"
	"github.com/at-ishikawa/adaptlearn/internal/model"
)

//go:generate mockgen -source=practice_quiz.go -destination=../mocks/cli/mock_practice_quiz.go -package=mock_cli

// Reviewer records the recall quality of a practiced question.
type Reviewer interface {
	ReviewQuestion(ctx context.Context, studentID, questionID string, quality int) (*model.SchedulingRecord, error)
}

type Session interface {
	Session(ctx context.Context) error
}

var errEnd = errors.New("end")

// PracticeQuizCLI asks the questions of a practice session one at a time,
// grades them locally and feeds the outcome to the scheduler.
type PracticeQuizCLI struct {
	*Renderer
	reviewer         Reviewer
	studentID        string
	questions        []model.Question
	stdinReader      *bufio.Reader
	correctQuality   int
	incorrectQuality int

	asked   int
	correct int
}

func NewPracticeQuizCLI(
	reviewer Reviewer,
	studentID string,
	questions []model.Question,
	gradingConfig config.GradingConfig,
	stdin io.Reader,
	stdout io.Writer,
) *PracticeQuizCLI {
	return &PracticeQuizCLI{
		Renderer:         NewRenderer(stdout),
		reviewer:         reviewer,
		studentID:        studentID,
		questions:        questions,
		stdinReader:      bufio.NewReader(stdin),
		correctQuality:   gradingConfig.CorrectQuality,
		incorrectQuality: gradingConfig.IncorrectQuality,
	}
}

// Run calls session until it ends, fails or the process is interrupted.
func Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for ctx.Err() == nil {
			if err := session.Session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// Session asks the next question.
func (cli *PracticeQuizCLI) Session(ctx context.Context) error {
	if len(cli.questions) == 0 {
		if err := cli.printf("Practiced %d questions, %d correct.\n", cli.asked, cli.correct); err != nil {
			return err
		}
		return errEnd
	}
	q := cli.questions[0]
	if q.Type == model.QuestionTypeEssay {
		cli.questions = cli.questions[1:]
		return cli.printf("Skipping essay %s: essays are graded by a teacher.\n", q.ID)
	}

	if err := cli.printQuestion(q); err != nil {
		return err
	}
	line, err := cli.stdinReader.ReadString('\n')
	if errors.Is(err, io.EOF) && line == "" {
		return errEnd
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error reading input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "quit" {
		return errEnd
	}

	payload, err := parseAnswer(q, line)
	if err != nil {
		return cli.printf("%s\n", cli.yellow.Sprintf("%v, try again", err))
	}
	correct, _ := grading.Evaluate(q, payload)
	cli.asked++
	quality := cli.incorrectQuality
	if correct {
		cli.correct++
		quality = cli.correctQuality
		_, err = cli.green.Fprintf(cli.stdoutWriter, "✅ It's correct.\n")
	} else {
		_, err = cli.red.Fprintf(cli.stdoutWriter, "❌ It's wrong. The answer is %s\n", cli.bold.Sprintf("%s", expectedAnswer(q)))
	}
	if err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}

	record, err := cli.reviewer.ReviewQuestion(ctx, cli.studentID, q.ID, quality)
	if err != nil {
		return fmt.Errorf("review question %s: %w", q.ID, err)
	}
	if err := cli.SchedulingRecord(record); err != nil {
		return err
	}
	cli.questions = cli.questions[1:]
	return nil
}

func (cli *PracticeQuizCLI) printQuestion(q model.Question) error {
	if err := cli.printf("\n%s\n", cli.bold.Sprintf("%s", q.Prompt)); err != nil {
		return err
	}
	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		for _, o := range q.Key.Options {
			if err := cli.printf("  %s) %s\n", o.ID, o.Text); err != nil {
				return err
			}
		}
		return cli.printf("Option: ")
	case model.QuestionTypeTrueFalse:
		return cli.printf("True or false: ")
	case model.QuestionTypeMatching:
		lefts := make([]string, 0, len(q.Key.Pairs))
		rights := make([]string, 0, len(q.Key.Pairs))
		for _, p := range q.Key.Pairs {
			lefts = append(lefts, p.Left)
			rights = append(rights, p.Right)
		}
		return cli.printf("Match %s with %s (left=right; ...): ",
			strings.Join(lefts, ", "), cli.italic.Sprintf("%s", strings.Join(rights, ", ")))
	default:
		return cli.printf("Answer: ")
	}
}

// parseAnswer turns a typed line into the payload of the question's type.
func parseAnswer(q model.Question, line string) (model.AnswerPayload, error) {
	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		return model.AnswerPayload{SelectedOptionID: line}, nil
	case model.QuestionTypeTrueFalse:
		switch strings.ToLower(line) {
		case "y", "yes":
			line = "true"
		case "n", "no":
			line = "false"
		}
		b, err := strconv.ParseBool(line)
		if err != nil {
			return model.AnswerPayload{}, fmt.Errorf("%q is neither true nor false", line)
		}
		return model.AnswerPayload{BoolAnswer: &b}, nil
	case model.QuestionTypeMatching:
		var pairs []model.MatchPair
		for _, part := range strings.Split(line, ";") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			left, right, ok := strings.Cut(part, "=")
			if !ok {
				return model.AnswerPayload{}, fmt.Errorf("%q is not a left=right pair", strings.TrimSpace(part))
			}
			pairs = append(pairs, model.MatchPair{Left: strings.TrimSpace(left), Right: strings.TrimSpace(right)})
		}
		return model.AnswerPayload{Matches: pairs}, nil
	default:
		return model.AnswerPayload{TextAnswer: line}, nil
	}
}

func expectedAnswer(q model.Question) string {
	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		var correct []string
		for _, o := range q.Key.Options {
			if o.IsCorrect {
				correct = append(correct, fmt.Sprintf("%s) %s", o.ID, o.Text))
			}
		}
		return strings.Join(correct, " or ")
	case model.QuestionTypeTrueFalse:
		if q.Key.CorrectBool == nil {
			return "-"
		}
		return strconv.FormatBool(*q.Key.CorrectBool)
	case model.QuestionTypeMatching:
		pairs := make([]string, 0, len(q.Key.Pairs))
		for _, p := range q.Key.Pairs {
			pairs = append(pairs, p.Left+"="+p.Right)
		}
		return strings.Join(pairs, "; ")
	default:
		return strings.Join(q.Key.AcceptedAnswers, " or ")
	}
}
