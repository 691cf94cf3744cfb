package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/adaptlearn/internal/cli"
	"github.com/at-ishikawa/adaptlearn/internal/config"
	"github.com/at-ishikawa/adaptlearn/internal/server"
)

func newReviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "review STUDENT_ID QUESTION_ID QUALITY",
		Short: "Record how well a student recalled a question (quality 0-5)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			quality, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid quality %q: %w", args[2], err)
			}
			return runEngine(cmd, func(ctx context.Context, e server.Engine, _ *config.Config, r *cli.Renderer) error {
				record, err := e.ReviewQuestion(ctx, args[0], args[1], quality)
				if err != nil {
					return err
				}
				return r.SchedulingRecord(record)
			})
		},
	}
}

func newDueCommand() *cobra.Command {
	var (
		limit      int
		includeNew bool
	)
	command := &cobra.Command{
		Use:   "due STUDENT_ID",
		Short: "List the questions due for review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(cmd, func(ctx context.Context, e server.Engine, _ *config.Config, r *cli.Renderer) error {
				ids, err := e.DueQuestions(ctx, args[0], limit, includeNew)
				if err != nil {
					return err
				}
				return r.QuestionIDs("Due questions", ids)
			})
		},
	}
	command.Flags().IntVar(&limit, "limit", 20, "maximum number of questions")
	command.Flags().BoolVar(&includeNew, "include-new", false, "fill up with questions the student has never reviewed")
	return command
}

func newMissedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "missed STUDENT_ID",
		Short: "List the questions a student missed, most missed first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(cmd, func(ctx context.Context, e server.Engine, _ *config.Config, r *cli.Renderer) error {
				questions, err := e.FrequentlyMissedQuestions(ctx, args[0])
				if err != nil {
					return err
				}
				return r.Questions("Frequently missed questions", questions)
			})
		},
	}
}
