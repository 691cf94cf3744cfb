package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/adaptlearn/internal/cli"
	"github.com/at-ishikawa/adaptlearn/internal/config"
	"github.com/at-ishikawa/adaptlearn/internal/server"
	"github.com/at-ishikawa/adaptlearn/internal/worksheet"
)

type practiceOptions struct {
	count       int
	pdfFile     string
	answerKey   bool
	interactive bool
}

func newPracticeCommand() *cobra.Command {
	var options practiceOptions
	command := &cobra.Command{
		Use:   "practice STUDENT_ID",
		Short: "Generate a practice session from due, missed and new questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if options.interactive && options.pdfFile != "" {
				return fmt.Errorf("--interactive and --pdf cannot be combined")
			}
			return runEngine(cmd, func(ctx context.Context, e server.Engine, cfg *config.Config, r *cli.Renderer) error {
				return runPractice(ctx, cmd, e, cfg, r, args[0], options)
			})
		},
	}
	command.Flags().IntVar(&options.count, "count", 0, "number of questions (0 uses engine.practice.default_question_count)")
	command.Flags().StringVar(&options.pdfFile, "pdf", "", "write the session as a PDF worksheet")
	command.Flags().BoolVar(&options.answerKey, "answer-key", false, "append the answer key to the worksheet")
	command.Flags().BoolVar(&options.interactive, "interactive", false, "answer the questions on the terminal")
	return command
}

func runPractice(ctx context.Context, cmd *cobra.Command, e server.Engine, cfg *config.Config, r *cli.Renderer, studentID string, options practiceOptions) error {
	session, err := e.GeneratePracticeSession(ctx, studentID, options.count)
	if err != nil {
		return err
	}
	if len(session.Questions) == 0 {
		return r.Questions("Practice session", nil)
	}

	if options.interactive {
		quiz := cli.NewPracticeQuizCLI(e, studentID, session.Questions, cfg.Engine.Grading, cmd.InOrStdin(), cmd.OutOrStdout())
		return cli.Run(ctx, quiz)
	}

	markdown := worksheet.Markdown("Practice for "+studentID, session.Questions)
	if options.answerKey {
		markdown += "\n" + worksheet.AnswerKey(session.Questions)
	}
	if options.pdfFile == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), markdown)
		return err
	}

	path, err := worksheet.WritePDF(options.pdfFile, markdown)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Worksheet written to %s\n", path)
	return err
}
