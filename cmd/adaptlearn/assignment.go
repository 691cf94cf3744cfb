package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/adaptlearn/internal/cli"
	"github.com/at-ishikawa/adaptlearn/internal/config"
	"github.com/at-ishikawa/adaptlearn/internal/engine"
	"github.com/at-ishikawa/adaptlearn/internal/server"
)

func newIssueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "issue ASSIGNMENT_ID STUDENT_ID",
		Short: "Issue an assignment to a student",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(cmd, func(ctx context.Context, e server.Engine, _ *config.Config, r *cli.Renderer) error {
				sa, err := e.IssueAssignment(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				return r.StudentAssignment(sa)
			})
		},
	}
}

func newStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start STUDENT_ASSIGNMENT_ID",
		Short: "Start working on an issued assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(cmd, func(ctx context.Context, e server.Engine, _ *config.Config, r *cli.Renderer) error {
				sa, err := e.StartAssignment(ctx, args[0])
				if err != nil {
					return err
				}
				return r.StudentAssignment(sa)
			})
		},
	}
}

func newSubmitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "submit STUDENT_ASSIGNMENT_ID ANSWERS_FILE",
		Short: "Submit the answers of an assignment and grade them",
		Long: "Submit the answers in ANSWERS_FILE, a YAML list such as\n\n" +
			"  - question_id: q1\n" +
			"    selected_option_id: a\n" +
			"  - question_id: q2\n" +
			"    bool_answer: true\n",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := readAnswers(args[1])
			if err != nil {
				return err
			}
			return runEngine(cmd, func(ctx context.Context, e server.Engine, _ *config.Config, r *cli.Renderer) error {
				result, err := e.SubmitAssignment(ctx, args[0], answers)
				if err != nil {
					return err
				}
				return r.GradeResult(result)
			})
		},
	}
}

func readAnswers(path string) ([]engine.AnswerInput, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	var answers []engine.AnswerInput
	if err := yaml.Unmarshal(content, &answers); err != nil {
		return nil, fmt.Errorf("decode answers %s: %w", path, err)
	}
	return answers, nil
}

func newRetakeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "retake STUDENT_ASSIGNMENT_ID",
		Short: "Reopen a graded assignment for another attempt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(cmd, func(ctx context.Context, e server.Engine, _ *config.Config, r *cli.Renderer) error {
				sa, err := e.RetakeAssignment(ctx, args[0])
				if err != nil {
					return err
				}
				return r.StudentAssignment(sa)
			})
		},
	}
}

func newGradeEssayCommand() *cobra.Command {
	var (
		correct  bool
		feedback string
	)
	command := &cobra.Command{
		Use:   "grade-essay ANSWER_ID SCORE",
		Short: "Grade an essay answer by hand",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid score %q: %w", args[1], err)
			}
			return runEngine(cmd, func(ctx context.Context, e server.Engine, _ *config.Config, r *cli.Renderer) error {
				answer, err := e.GradeEssay(ctx, args[0], correct, score, feedback)
				if err != nil {
					return err
				}
				return r.Answer(answer)
			})
		},
	}
	command.Flags().BoolVar(&correct, "correct", false, "mark the answer as correct")
	command.Flags().StringVar(&feedback, "feedback", "", "feedback for the student")
	return command
}

func newAssignmentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "assignments STUDENT_ID",
		Short: "List the assignments issued to a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(cmd, func(ctx context.Context, e server.Engine, _ *config.Config, r *cli.Renderer) error {
				list, err := e.StudentAssignments(ctx, args[0])
				if err != nil {
					return err
				}
				return r.StudentAssignments(list)
			})
		},
	}
}
